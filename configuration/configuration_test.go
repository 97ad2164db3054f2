package configuration

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

var configYamlV0_1 = `
version: 0.1
log:
  level: debug
  formatter: text
  fields:
    environment: test
storage:
  filesystem:
    rootdirectory: /tmp/bao
  limits:
    maxblobsize: 1073741824
http:
  addr: localhost:6000
  prefix: /bao/
  headers:
    X-Content-Type-Options: [nosniff]
`

func TestParseSimple(t *testing.T) {
	config, err := Parse(bytes.NewReader([]byte(configYamlV0_1)))
	require.NoError(t, err)

	require.Equal(t, Loglevel("debug"), config.Log.Level)
	require.Equal(t, "text", config.Log.Formatter)
	require.Equal(t, "test", config.Log.Fields["environment"])

	require.Equal(t, "filesystem", config.Storage.Type())
	require.Equal(t, "/tmp/bao", config.Storage.Parameters()["rootdirectory"])
	require.EqualValues(t, 1073741824, config.Storage.MaxBlobSize())

	require.Equal(t, "localhost:6000", config.HTTP.Addr)
	require.Equal(t, "/bao/", config.HTTP.Prefix)
	require.Equal(t, []string{"nosniff"}, config.HTTP.Headers["X-Content-Type-Options"])
}

func TestParseDefaultsLogLevel(t *testing.T) {
	const minimal = `
version: 0.1
storage:
  filesystem:
    rootdirectory: /tmp/bao
`
	config, err := Parse(bytes.NewReader([]byte(minimal)))
	require.NoError(t, err)
	require.Equal(t, Loglevel("info"), config.Log.Level)
}

func TestParseRequiresStorage(t *testing.T) {
	const noStorage = `
version: 0.1
`
	_, err := Parse(bytes.NewReader([]byte(noStorage)))
	require.Error(t, err)
}

func TestParseRejectsMultipleStorageDrivers(t *testing.T) {
	const twoDrivers = `
version: 0.1
storage:
  filesystem:
    rootdirectory: /tmp/bao
  inmemory: ~
`
	_, err := Parse(bytes.NewReader([]byte(twoDrivers)))
	require.Error(t, err)
}

func TestStorageBareStringHasNoParameters(t *testing.T) {
	const bare = `
version: 0.1
storage: inmemory
`
	config, err := Parse(bytes.NewReader([]byte(bare)))
	require.NoError(t, err)
	require.Equal(t, "inmemory", config.Storage.Type())
	require.Empty(t, config.Storage.Parameters())
}
