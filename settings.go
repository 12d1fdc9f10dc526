package cmdargs

// Setting is one independently-togglable command behavior. Implemented
// as a bitmask rather than a struct of named bools so that "union global
// settings into local" and "propagate globals into a subcommand" are a
// single OR.
type Setting uint32

const (
	NoBinaryName Setting = 1 << iota
	InferLongArgs
	InferSubcommands
	ArgsNegateSubcommands
	SubcommandPrecedenceOverArg
	AllowHyphenValues
	AllowNegativeNumbers
	DontDelimitTrailingValues
	DontCollapseArgsInUsage
	ContainsLast
	SubcommandRequired
	SubcommandRequiredElseHelp
	DisableHelpFlag
	DisableVersionFlag
	DisableHelpSubcommand
	DeriveDisplayOrder
	AllowInvalidUtf8ForExternalSubcommands
	AllowMissingPositionals
	ExternalSubcommands
)

// Has reports whether flag is set in s.
func (s Setting) Has(flag Setting) bool { return s&flag != 0 }

// With returns s with flag set.
func (s Setting) With(flag Setting) Setting { return s | flag }
