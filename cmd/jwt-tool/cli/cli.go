package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/ctl"
	"github.com/effective-security/xlog"
	"github.com/goccy/go-json"
	jwt "github.com/krajcik/jwtcodec"
)

var logger = xlog.NewPackageLogger("github.com/krajcik/jwtcodec", "cli")

// Cli provides CLI context to run commands
type Cli struct {
	Version ctl.VersionFlag `name:"version" help:"Print version information and quit" hidden:""`

	Debug  bool   `help:"Enable debug logging"`
	Config string `help:"YAML file with default alg, key_file and algorithms"`

	// Stdin is the source to read from, typically set to os.Stdin
	stdin io.Reader
	// Output is the destination for all output from the command, typically set to os.Stdout
	output io.Writer
	// ErrOutput is the destinaton for errors.
	// If not set, errors will be written to os.StdError
	errOutput io.Writer

	cfg *Config
}

// Reader is the source to read from, typically set to os.Stdin
func (c *Cli) Reader() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// WithReader allows to specify a custom reader
func (c *Cli) WithReader(reader io.Reader) *Cli {
	c.stdin = reader
	return c
}

// Writer returns a writer for control output
func (c *Cli) Writer() io.Writer {
	if c.output != nil {
		return c.output
	}
	return os.Stdout
}

// WithWriter allows to specify a custom writer
func (c *Cli) WithWriter(out io.Writer) *Cli {
	c.output = out
	return c
}

// ErrWriter returns a writer for control output
func (c *Cli) ErrWriter() io.Writer {
	if c.errOutput != nil {
		return c.errOutput
	}
	return os.Stderr
}

// WithErrWriter allows to specify a custom error writer
func (c *Cli) WithErrWriter(out io.Writer) *Cli {
	c.errOutput = out
	return c
}

// WithConfig sets the defaults used when flags are omitted
func (c *Cli) WithConfig(cfg *Config) *Cli {
	c.cfg = cfg
	return c
}

// AfterApply hook loads config
func (c *Cli) AfterApply(_ *kong.Kong, _ kong.Vars) error {
	if c.Debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		xlog.SetGlobalLogLevel(xlog.ERROR)
	}

	if c.Config != "" {
		cfg, err := LoadConfig(c.Config)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}
	return nil
}

// Cfg returns the loaded config, or an empty one
func (c *Cli) Cfg() *Config {
	if c.cfg == nil {
		return &Config{}
	}
	return c.cfg
}

// WriteJSON prints indented JSON to out
func (c *Cli) WriteJSON(value interface{}) error {
	js, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errors.WithMessage(err, "failed to encode")
	}
	_, _ = c.Writer().Write(js)
	_, _ = c.Writer().Write([]byte("\n"))
	return nil
}

// ReadFile reads from stdin if the file is "-"
func (c *Cli) ReadFile(filename string) ([]byte, error) {
	if filename == "" {
		return nil, errors.New("empty file name")
	}
	if filename == "-" {
		return io.ReadAll(c.Reader())
	}
	return os.ReadFile(filename)
}

// readKey returns the HMAC secret or the PEM key file contents
func (c *Cli) readKey(keyFile, secret string) ([]byte, error) {
	if secret != "" && keyFile != "" {
		return nil, errors.New("specify either --secret or --key")
	}
	if secret != "" {
		return []byte(secret), nil
	}
	if keyFile == "" {
		keyFile = c.Cfg().KeyFile
	}
	if keyFile == "" {
		return nil, errors.New("--secret or --key is required")
	}
	logger.KV(xlog.DEBUG, "key_file", keyFile)

	key, err := c.ReadFile(keyFile)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to load key file")
	}
	return key, nil
}

// claimObject returns the claim as a JSON object that keeps numbers exact
func claimObject(c *jwt.Claim) (map[string]interface{}, error) {
	js, err := c.MarshalClaims()
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()

	obj := map[string]interface{}{}
	if err := dec.Decode(&obj); err != nil {
		return nil, errors.WithMessage(err, "unable to decode claims")
	}
	return obj, nil
}
