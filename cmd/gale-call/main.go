package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/gale-lang/gale/marshal"
	"github.com/gale-lang/gale/value"
	"github.com/gale-lang/gale/wrap"
)

func main() {
	var (
		funcName    = flag.String("func", "", "Function to call")
		argsStr     = flag.String("args", "", "Arguments (comma-separated)")
		list        = flag.Bool("list", false, "List registered functions and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		wrap.SetLogger(logger)
	}

	env, bindings := demoBindings()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(env, bindings); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(env, bindings, *funcName, *argsStr, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(env *value.Env, bindings []binding, funcName, argsStr string, listOnly bool) error {
	if listOnly || funcName == "" {
		fmt.Println("Registered functions:")
		for _, b := range bindings {
			fmt.Printf("  %s\n", b.signature())
		}
		if funcName == "" && !listOnly {
			fmt.Println("\nUse -func to specify a function to call.")
		}
		return nil
	}

	var bound *binding
	for i := range bindings {
		if bindings[i].name == funcName {
			bound = &bindings[i]
			break
		}
	}
	if bound == nil {
		return fmt.Errorf("unknown function %q, use -list to see what is registered", funcName)
	}

	var raw []string
	if argsStr != "" {
		raw = strings.Split(argsStr, ",")
	}
	args, err := bound.parseArgs(raw)
	if err != nil {
		return err
	}

	fmt.Printf("Calling %s(%s)...\n", funcName, strings.Join(raw, ", "))
	result, err := wrap.Call(env, bound.fn, args...)
	if err != nil {
		return fmt.Errorf("call %s: %w", funcName, err)
	}

	fmt.Printf("Result: %s\n", result)
	return nil
}

// binding pairs a wrapped function with enough parameter metadata to
// parse arguments from command-line strings.
type binding struct {
	name   string
	fn     *value.NativeFn
	params []paramInfo
	result string
}

type paramInfo struct {
	name     string
	typeStr  string
	optional bool
	rest     bool
	parse    func(string) (any, error)
}

func (b *binding) signature() string {
	var params []string
	for _, p := range b.params {
		s := p.name + ": " + p.typeStr
		if p.optional {
			s += "?"
		}
		if p.rest {
			s += "..."
		}
		params = append(params, s)
	}
	result := ""
	if b.result != "" {
		result = " -> " + b.result
	}
	return b.name + "(" + strings.Join(params, ", ") + ")" + result
}

func (b *binding) parseArgs(raw []string) ([]any, error) {
	out := make([]any, 0, len(raw))
	for i, s := range raw {
		p := b.params[len(b.params)-1]
		if i < len(b.params) {
			p = b.params[i]
		} else if !p.rest {
			return nil, fmt.Errorf("%s takes at most %d arguments", b.name, len(b.params))
		}
		v, err := p.parse(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, p.name, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseInt(s string) (any, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil, err
	}
	return int32(n), nil
}

func parseFloat(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return nil, err
	}
	return float32(f), nil
}

func parseString(s string) (any, error) { return s, nil }

// limits is the ambient global the clamp demo reads.
type limits struct {
	Max int32
}

func demoBindings() (*value.Env, []binding) {
	env := value.NewEnv()
	if err := env.Globals.Put(limits{Max: 100}); err != nil {
		panic(err)
	}

	return env, []binding{
		{
			name: "add",
			fn: wrap.MustFn("add", func(a, b int32) int32 {
				return a + b
			}),
			params: []paramInfo{
				{name: "a", typeStr: "int", parse: parseInt},
				{name: "b", typeStr: "int", parse: parseInt},
			},
			result: "int",
		},
		{
			name: "sum",
			fn: wrap.MustFn("sum", func(ns ...int32) int32 {
				var total int32
				for _, n := range ns {
					total += n
				}
				return total
			}),
			params: []paramInfo{
				{name: "ns", typeStr: "int", rest: true, parse: parseInt},
			},
			result: "int",
		},
		{
			name: "greet",
			fn: wrap.MustFn("greet", func(name string, greeting marshal.Opt[string]) string {
				g := "hello"
				if greeting.Ok {
					g = greeting.Val
				}
				return g + ", " + name + "!"
			}),
			params: []paramInfo{
				{name: "name", typeStr: "str", parse: parseString},
				{name: "greeting", typeStr: "str", optional: true, parse: parseString},
			},
			result: "str",
		},
		{
			name: "repeat",
			fn: wrap.MustFn("repeat", func(s string, n int32) string {
				return strings.Repeat(s, int(n))
			}),
			params: []paramInfo{
				{name: "s", typeStr: "str", parse: parseString},
				{name: "n", typeStr: "int", parse: parseInt},
			},
			result: "str",
		},
		{
			name: "mean",
			fn: wrap.MustFn("mean", func(first float32, rest ...float32) float32 {
				total := first
				for _, f := range rest {
					total += f
				}
				return total / float32(1+len(rest))
			}),
			params: []paramInfo{
				{name: "first", typeStr: "flo", parse: parseFloat},
				{name: "rest", typeStr: "flo", rest: true, parse: parseFloat},
			},
			result: "flo",
		},
		{
			name: "clamp",
			fn: wrap.MustFn("clamp", func(g wrap.Global[limits], n int32) int32 {
				if n > g.Val.Max {
					return g.Val.Max
				}
				return n
			}),
			params: []paramInfo{
				{name: "n", typeStr: "int", parse: parseInt},
			},
			result: "int",
		},
	}
}
