package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"

	"github.com/dd0wney/portgen/pkg/logging"
	"github.com/dd0wney/portgen/pkg/nodename"
	"github.com/dd0wney/portgen/pkg/render"
	"github.com/dd0wney/portgen/pkg/validation"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const version = "portgen v1.0.0"

// options holds the flags shared by every subcommand.
type options struct {
	Format  string
	Network string
	Verbose bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}

	switch args[0] {
	case "decode":
		return runDecode(args[1:], stdout, stderr)
	case "list":
		return runList(args[1:], stdout, stderr)
	case "browse":
		return runBrowse(args[1:], stdout, stderr)
	case "help", "--help", "-h":
		printUsage(stdout)
		return exitOK
	case "version", "--version":
		fmt.Fprintln(stdout, version)
		return exitOK
	default:
		return runResolve(args, stdout, stderr)
	}
}

func printUsage(w io.Writer) {
	usage := `portgen - deterministic ports and addresses for blockchain nodes

Usage:
  portgen [flags] <node-name>              Resolve a node name
  portgen decode [flags] <port|ip[:port]>  Find the node behind a port or address
  portgen list [flags]                     Print the allocation table
  portgen browse [flags]                   Pick a node interactively
  portgen help | version

Node names:
  {role}-[chain-]{network}-{instance}
  role      boot (instance 0), rpc (1-3), val (1-6)
  chain     relay (default), asset-hub, bridge-hub, collectives, people,
            coretime, encointer, or a custom parachain of the network
  network   polkadot, kusama, westend, paseo

Flags:
  -format   name|port|addr|json|yaml|table|prom
  -network  restrict list and browse to one network
  -v        debug logging on stderr

Examples:
  portgen boot-polkadot-00                  # 31000
  portgen -format addr rpc-asset-hub-kusama-01
  portgen decode 33044                      # val-people-westend-01
  portgen list -network paseo
  portgen list -format prom > /var/lib/node_exporter/portgen.prom
`
	fmt.Fprint(w, usage)
}

// newFlagSet registers the shared flags with a per-command default format.
func newFlagSet(name, defaultFormat string, stderr io.Writer, opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.Format, "format", defaultFormat, "output format: "+strings.Join(render.Formats(), "|"))
	fs.StringVar(&opts.Network, "network", "", "restrict to one network")
	fs.BoolVar(&opts.Verbose, "v", false, "debug logging on stderr")
	fs.Usage = func() { printUsage(stderr) }
	return fs
}

// parseArgs lets flags appear before or after positional arguments.
// Everything after "--" is positional.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func (o *options) validate() error {
	return validation.NewConfigValidator("options").
		OneOf("format", o.Format, render.Formats()).
		When(o.Network != "", func(v *validation.ConfigValidator) {
			v.Custom("network", func() error {
				if _, ok := nodename.ParseNetwork(o.Network); !ok {
					return fmt.Errorf("%w %q", nodename.ErrUnknownNetwork, o.Network)
				}
				return nil
			})
		}).
		Validate()
}

// setup parses flags and checks the positional argument count. A non-negative
// exit code means the command is done.
func setup(name, defaultFormat string, args []string, wantArgs int, stdout, stderr io.Writer) (*options, []string, int) {
	opts := &options{}
	fs := newFlagSet(name, defaultFormat, stderr, opts)
	positional, err := parseArgs(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return nil, nil, exitOK
	}
	if err != nil {
		return nil, nil, exitUsage
	}
	if len(positional) != wantArgs {
		fmt.Fprintf(stderr, "%s: expected %d argument(s), got %d\n\n", name, wantArgs, len(positional))
		printUsage(stderr)
		return nil, nil, exitUsage
	}
	if err := opts.validate(); err != nil {
		render.Error(stderr, err)
		return nil, nil, exitUsage
	}
	return opts, positional, -1
}

func runResolve(args []string, stdout, stderr io.Writer) int {
	opts, positional, code := setup("portgen", string(render.FormatPort), args, 1, stdout, stderr)
	if code >= 0 {
		return code
	}
	name := positional[0]

	log := logging.NewCLILogger(stderr, opts.Verbose).With(logging.Component("portgen"), logging.Operation("resolve"))
	timer := logging.StartTimer(log, "resolve", logging.NodeName(name), logging.Format(opts.Format))

	n, err := nodename.Parse(name)
	if err != nil {
		timer.EndError(err, logging.Kind(nodename.KindName(err)))
		render.Error(stderr, err)
		return exitFailure
	}
	timer.End(logging.Port(n.Port()), logging.Addr(n.Addr().String()))

	return write(stdout, stderr, log, render.Format(opts.Format), n)
}

func runDecode(args []string, stdout, stderr io.Writer) int {
	opts, positional, code := setup("decode", string(render.FormatName), args, 1, stdout, stderr)
	if code >= 0 {
		return code
	}
	input := positional[0]

	log := logging.NewCLILogger(stderr, opts.Verbose).With(logging.Component("portgen"), logging.Operation("decode"))
	timer := logging.StartTimer(log, "decode", logging.String("input", input))

	n, err := decode(input)
	if err != nil {
		timer.EndError(err)
		render.Error(stderr, err)
		return exitFailure
	}
	timer.End(logging.NodeName(n.Name()))

	return write(stdout, stderr, log, render.Format(opts.Format), n)
}

// decode accepts a port number, a dotted IPv4 address, or the ip:port form
// printed by the addr format.
func decode(input string) (nodename.Node, error) {
	if ap, err := netip.ParseAddrPort(input); err == nil {
		n, err := nodename.DecodeAddr(ap.Addr())
		if err != nil {
			return nodename.Node{}, err
		}
		if int(ap.Port()) != n.Port() {
			return nodename.Node{}, fmt.Errorf("%w: %s: %s listens on %d", nodename.ErrInvalidAddr, ap, n.Name(), n.Port())
		}
		return n, nil
	}
	if strings.Contains(input, ".") {
		addr, err := netip.ParseAddr(input)
		if err != nil {
			return nodename.Node{}, fmt.Errorf("%w: %q: %v", nodename.ErrInvalidAddr, input, err)
		}
		return nodename.DecodeAddr(addr)
	}
	port, err := nodename.ParsePort(input)
	if err != nil {
		return nodename.Node{}, err
	}
	return nodename.DecodePort(port)
}

func runList(args []string, stdout, stderr io.Writer) int {
	opts, _, code := setup("list", string(render.FormatTable), args, 0, stdout, stderr)
	if code >= 0 {
		return code
	}

	log := logging.NewCLILogger(stderr, opts.Verbose).With(logging.Component("portgen"), logging.Operation("list"))
	nodes := selectNodes(opts)
	log.Debug("listing nodes", logging.Count(len(nodes)), logging.String("network", opts.Network))

	return write(stdout, stderr, log, render.Format(opts.Format), nodes...)
}

// selectNodes returns the nodes of opts.Network, or of every network.
// opts must already be validated.
func selectNodes(opts *options) []nodename.Node {
	if opts.Network == "" {
		return nodename.All()
	}
	network, _ := nodename.ParseNetwork(opts.Network)
	return nodename.ForNetwork(network)
}

func write(stdout, stderr io.Writer, log logging.Logger, format render.Format, nodes ...nodename.Node) int {
	if err := render.Write(stdout, format, nodes...); err != nil {
		log.Error("write failed", logging.Error(err))
		render.Error(stderr, err)
		return exitFailure
	}
	return exitOK
}
