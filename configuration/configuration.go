// Package configuration defines the on-disk shape of a bao server's
// configuration file and how it is parsed, including environment variable
// overrides.
package configuration

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"
)

// Configuration is a versioned bao server configuration, intended to be
// provided by a yaml file and optionally overridden by environment
// variables.
//
// Note that yaml field names should never include _ characters, since this
// is the separator used in environment variable names.
type Configuration struct {
	// Version is the version which defines the format of the rest of the
	// configuration.
	Version Version `yaml:"version"`

	// Log supports setting various parameters related to the logging
	// subsystem.
	Log Log `yaml:"log"`

	// Storage is the configuration for the blob store's storage driver.
	Storage Storage `yaml:"storage"`

	// HTTP contains configuration parameters for the server's HTTP
	// interface.
	HTTP HTTP `yaml:"http,omitempty"`
}

// Log represents the configuration for logging within the application.
type Log struct {
	// Level is the granularity at which operations are logged.
	Level Loglevel `yaml:"level,omitempty"`

	// Formatter overrides the default formatter with another. Options
	// include "text" and "json".
	Formatter string `yaml:"formatter,omitempty"`

	// Fields allows users to specify static string fields to include in
	// the logger context. bao serve parses but does not apply them.
	Fields map[string]interface{} `yaml:"fields,omitempty"`

	// ReportCaller allows the logger to report the caller.
	ReportCaller bool `yaml:"reportcaller,omitempty"`
}

// HTTP defines configuration options for the HTTP interface of the server.
// bao serve uses only Addr and Net; Prefix, DrainTimeout, TLS and Headers
// are parsed but not applied by it.
type HTTP struct {
	// Addr specifies the bind address for the server instance.
	Addr string `yaml:"addr,omitempty"`

	// Net specifies the net portion of the bind address. An empty value
	// means tcp.
	Net string `yaml:"net,omitempty"`

	// Prefix specifies a URL path prefix for the HTTP interface.
	Prefix string `yaml:"prefix,omitempty"`

	// DrainTimeout is the amount of time to wait for connections to drain
	// before shutting down when the server receives a stop signal.
	DrainTimeout time.Duration `yaml:"draintimeout,omitempty"`

	// TLS instructs the http server to listen with a TLS configuration.
	TLS TLS `yaml:"tls,omitempty"`

	// Headers is a set of headers to include in every HTTP response.
	Headers http.Header `yaml:"headers,omitempty"`
}

// TLS defines the configuration options for enabling TLS on the server's
// HTTP interface.
type TLS struct {
	// Certificate specifies the path to an x509 certificate file.
	Certificate string `yaml:"certificate,omitempty"`

	// Key specifies the path to the x509 private key file.
	Key string `yaml:"key,omitempty"`

	// MinimumTLS specifies the lowest TLS version allowed.
	MinimumTLS string `yaml:"minimumtls,omitempty"`

	// CipherSuites specifies a list of allowed cipher suites.
	CipherSuites []string `yaml:"ciphersuites,omitempty"`
}

// v0_1Configuration is a Version 0.1 Configuration struct. This is
// currently aliased to Configuration, as it is the only version.
type v0_1Configuration Configuration

// UnmarshalYAML implements the yaml.Unmarshaler interface. It unmarshals a
// string of the form X.Y into a Version, validating that X and Y can
// represent unsigned integers.
func (version *Version) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var versionString string
	if err := unmarshal(&versionString); err != nil {
		return err
	}

	newVersion := Version(versionString)
	if _, err := newVersion.major(); err != nil {
		return err
	}
	if _, err := newVersion.minor(); err != nil {
		return err
	}

	*version = newVersion
	return nil
}

// CurrentVersion is the most recent Version that can be parsed.
var CurrentVersion = MajorMinorVersion(0, 1)

// Loglevel is the level at which operations are logged. This can be error,
// warn, info, or debug.
type Loglevel string

// UnmarshalYAML implements the yaml.Unmarshaler interface. It unmarshals a
// string into a Loglevel, lowercasing it and validating that it names a
// known level.
func (loglevel *Loglevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var loglevelString string
	if err := unmarshal(&loglevelString); err != nil {
		return err
	}

	loglevelString = strings.ToLower(loglevelString)
	switch loglevelString {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("invalid loglevel %s: must be one of [error, warn, info, debug]", loglevelString)
	}

	*loglevel = Loglevel(loglevelString)
	return nil
}

// Parameters defines a key-value parameters mapping.
type Parameters map[string]interface{}

// Storage defines the configuration for the blob store's storage driver.
// Exactly one key names the driver (such as "filesystem" or "inmemory");
// the reserved key "limits" configures cross-driver blob size limits.
type Storage map[string]Parameters

// reservedStorageKeys are Storage map keys that do not name a driver.
var reservedStorageKeys = map[string]bool{
	"limits": true,
}

// Type returns the storage driver type, such as "filesystem".
func (storage Storage) Type() string {
	var storageType []string
	for k := range storage {
		if reservedStorageKeys[k] {
			continue
		}
		storageType = append(storageType, k)
	}
	if len(storageType) > 1 {
		panic("multiple storage drivers specified in configuration or environment: " + strings.Join(storageType, ", "))
	}
	if len(storageType) == 1 {
		return storageType[0]
	}
	return ""
}

// Parameters returns the Parameters map for the configured storage driver.
func (storage Storage) Parameters() Parameters {
	return storage[storage.Type()]
}

// MaxBlobSize returns the configured upper bound, in bytes, on the content
// length the server will decode from a stored blob's header, or 0 if unset
// (no limit). This is the bound that the HTTP handlers apply to Decode by
// way of DecodeOptions.MaxContentLength; uploads are not limited by it.
func (storage Storage) MaxBlobSize() int64 {
	limits, ok := storage["limits"]
	if !ok {
		return 0
	}
	switch v := limits["maxblobsize"].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

// UnmarshalYAML implements the yaml.Unmarshaler interface. It unmarshals
// either a single-item map into a Storage, or a bare string into a Storage
// with no parameters.
func (storage *Storage) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var storageMap map[string]Parameters
	if err := unmarshal(&storageMap); err == nil {
		nonReserved := 0
		for k := range storageMap {
			if !reservedStorageKeys[k] {
				nonReserved++
			}
		}
		if nonReserved > 1 {
			return fmt.Errorf("must provide exactly one storage driver type")
		}
		*storage = storageMap
		return nil
	}

	var storageType string
	if err := unmarshal(&storageType); err == nil {
		*storage = Storage{storageType: Parameters{}}
		return nil
	}

	return fmt.Errorf("invalid storage configuration")
}

// MarshalYAML implements the yaml.Marshaler interface.
func (storage Storage) MarshalYAML() (interface{}, error) {
	if storage.Parameters() == nil {
		return storage.Type(), nil
	}
	return map[string]Parameters(storage), nil
}

// Parse parses an input configuration yaml document into a Configuration
// struct.
//
// Environment variables may be used to override configuration parameters
// other than version, following the scheme below: Configuration.Abc may be
// replaced by the value of BAO_ABC, Configuration.Abc.Xyz may be replaced
// by the value of BAO_ABC_XYZ, and so forth.
func Parse(rd io.Reader) (*Configuration, error) {
	in, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	p := NewParser("bao", []VersionedParseInfo{
		{
			Version: MajorMinorVersion(0, 1),
			ParseAs: reflect.TypeOf(v0_1Configuration{}),
			ConversionFunc: func(c interface{}) (interface{}, error) {
				v0_1, ok := c.(*v0_1Configuration)
				if !ok {
					return nil, fmt.Errorf("expected *v0_1Configuration, received %#v", c)
				}
				if v0_1.Log.Level == Loglevel("") {
					v0_1.Log.Level = Loglevel("info")
				}
				if v0_1.Storage.Type() == "" {
					return nil, errors.New("no storage configuration provided")
				}
				return (*Configuration)(v0_1), nil
			},
		},
	})

	config := new(Configuration)
	if err := p.Parse(in, config); err != nil {
		return nil, err
	}

	return config, nil
}
