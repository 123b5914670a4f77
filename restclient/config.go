package restclient

import (
	"fmt"
	"regexp"
	"time"

	"github.com/mkaraca/restkit/transport"
	"github.com/mkaraca/restkit/validation"
)

// Config carries the per-service knobs of a Client. The zero value is not
// usable; at minimum Service must be set. ApplyDefaults fills the rest.
type Config struct {
	// Service is the catalog service type requested from the auth
	// provider, e.g. "compute" or "image".
	Service string `yaml:"service" mapstructure:"service"`

	// Region narrows endpoint resolution. Empty matches any region.
	Region string `yaml:"region" mapstructure:"region"`

	// EndpointType selects the endpoint interface. Defaults to "publicURL".
	EndpointType string `yaml:"endpoint_type" mapstructure:"endpoint_type"`

	// Type is the media subtype used for default Content-Type and Accept
	// headers ("application/<Type>") and for error body classification.
	// Defaults to "json".
	Type string `yaml:"type" mapstructure:"type"`

	// APIVersion, when set, is appended to resolved base URLs that do not
	// already end with it.
	APIVersion string `yaml:"api_version" mapstructure:"api_version"`

	// BuildInterval is the pause between deletion polls. Defaults to 1s.
	BuildInterval time.Duration `yaml:"build_interval" mapstructure:"build_interval"`

	// BuildTimeout bounds how long WaitForResourceDeletion polls before
	// giving up. Defaults to 60s.
	BuildTimeout time.Duration `yaml:"build_timeout" mapstructure:"build_timeout"`

	// Timeout is the per-request socket timeout handed to the transport.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TraceRequests is a regular expression matched against the name of
	// the calling function. Matching calls log a debug line before the
	// request is sent. Empty disables call-site tracing.
	TraceRequests string `yaml:"trace_requests" mapstructure:"trace_requests"`

	// TLS configures transport-level TLS. Nil uses plain defaults.
	TLS *transport.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.EndpointType == "" {
		c.EndpointType = "publicURL"
	}
	if c.Type == "" {
		c.Type = "json"
	}
	if c.BuildInterval == 0 {
		c.BuildInterval = time.Second
	}
	if c.BuildTimeout == 0 {
		c.BuildTimeout = 60 * time.Second
	}
}

// Validate reports configuration errors. Call after ApplyDefaults.
func (c *Config) Validate() error {
	v := validation.New().
		Required("service", c.Service).
		Custom(c.BuildInterval >= 0, "build_interval", "must not be negative").
		Custom(c.BuildTimeout >= 0, "build_timeout", "must not be negative").
		Custom(c.Timeout >= 0, "timeout", "must not be negative")

	if c.TraceRequests != "" {
		if _, err := regexp.Compile(c.TraceRequests); err != nil {
			v.AddError("trace_requests", err.Error())
		}
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			v.AddError("tls", err.Error())
		}
	}
	if err := v.Err(); err != nil {
		return fmt.Errorf("restclient: config: %w", err)
	}
	return nil
}
