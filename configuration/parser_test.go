package configuration

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type localConfiguration struct {
	Version Version  `yaml:"version"`
	Log     *logStub `yaml:"log"`
}

type logStub struct {
	Formatter string `yaml:"formatter,omitempty"`
}

const testConfig = `version: "0.1"
log:
  formatter: "text"`

func TestParserOverwriteInitializedField(t *testing.T) {
	config := localConfiguration{}

	os.Setenv("BAO_LOG_FORMATTER", "json")
	defer os.Unsetenv("BAO_LOG_FORMATTER")

	p := NewParser("bao", []VersionedParseInfo{
		{
			Version: "0.1",
			ParseAs: reflect.TypeOf(config),
			ConversionFunc: func(c interface{}) (interface{}, error) {
				return c, nil
			},
		},
	})

	err := p.Parse([]byte(testConfig), &config)
	require.NoError(t, err)
	require.Equal(t, Version("0.1"), config.Version)
	require.Equal(t, "json", config.Log.Formatter)
}

func TestParserRejectsUnknownVersion(t *testing.T) {
	config := localConfiguration{}
	p := NewParser("bao", []VersionedParseInfo{
		{
			Version: "0.1",
			ParseAs: reflect.TypeOf(config),
			ConversionFunc: func(c interface{}) (interface{}, error) {
				return c, nil
			},
		},
	})

	err := p.Parse([]byte(`version: "9.9"`), &config)
	require.Error(t, err)
}
