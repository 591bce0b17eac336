package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/alecthomas/kingpin/v2"
)

// LogLevels lists the values accepted by --log_level.
var LogLevels = []string{"debug", "info", "error"}

// ExitError carries the exit status the process should terminate with.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Args holds the parsed command line. Flags that were not given, or given
// an empty value, are nil.
type Args struct {
	Names     []string
	LogLevel  *string
	LogOutput *string
}

// Parser wraps a kingpin application with the tool's fixed surface.
// A Parser is good for a single Parse call.
type Parser struct {
	app       *kingpin.Application
	names     *[]string
	logLevel  *string
	logOutput *string

	terminated *int
}

// NewParser builds the parser. Usage and error text are written to usage.
func NewParser(name, help string, usage io.Writer) *Parser {
	p := &Parser{
		app: kingpin.New(name, help),
	}
	p.app.UsageWriter(usage)
	p.app.ErrorWriter(usage)
	p.app.Terminate(func(code int) {
		p.terminated = &code
	})
	p.app.HelpFlag.Short('h')

	p.names = p.app.Arg("arg_xxx_name", "About arg-xxx").Required().Strings()
	p.logLevel = p.app.Flag("log_level", "Log level [debug|info|error] (default error)").
		Short('l').PlaceHolder("LEVEL").String()
	p.logOutput = p.app.Flag("log_output", "Log output file (default console)").
		Short('o').PlaceHolder("PATH").String()

	return p
}

// Parse parses argv (without the program name).
func (p *Parser) Parse(argv []string) (Args, error) {
	_, err := p.app.Parse(argv)
	if p.terminated != nil {
		return Args{}, &ExitError{Code: *p.terminated, Message: "usage requested"}
	}
	if err != nil {
		p.app.Errorf("%s", err)
		p.app.Usage(nil)
		return Args{}, &ExitError{Code: 2, Message: err.Error()}
	}

	args := Args{
		Names:     slices.Clone(*p.names),
		LogLevel:  nonEmpty(*p.logLevel),
		LogOutput: nonEmpty(*p.logOutput),
	}

	if args.LogLevel != nil && !slices.Contains(LogLevels, *args.LogLevel) {
		p.app.Usage(nil)
		return Args{}, &ExitError{
			Code:    1,
			Message: fmt.Sprintf("invalid log level %q, expected one of %v", *args.LogLevel, LogLevels),
		}
	}

	return args, nil
}

func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
