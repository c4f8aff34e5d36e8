package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable. Affiliate and OpenAI
// credentials are deliberately not required here: the server starts without
// them and the individual endpoints fail fast with a credential report when
// they are missing.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAliExpress(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Bind == "" {
		return errors.New("server.bind must be set")
	}
	if c.Server.PublicDir == "" {
		return errors.New("server.public_dir must be set")
	}
	if c.Server.TmpDir == "" {
		return errors.New("server.tmp_dir must be set")
	}
	return nil
}

func (c *Config) validateAliExpress() error {
	parsed, err := url.Parse(c.AliExpress.Gateway)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("aliexpress.gateway %q is not a valid URL", c.AliExpress.Gateway)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format %q is not supported (use console or json)", c.Logging.Format)
	}
}
