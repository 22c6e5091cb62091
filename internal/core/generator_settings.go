package core

// CompletionFunc has the shape of a callback receiving the (status,
// combinedOutput) of a compile, link or run phase. The build executor does
// not call OnCompile, OnLink or OnRun: it passes no callback to the compiler
// driver, and compile, link and run failures are returned as errors.
type CompletionFunc func(status int, output string)

// GeneratorSettings bundles everything the planner and executor need beyond
// the dependency graph itself: platform identity, the chosen compiler,
// configuration/build-type selection, build mode and behavioural flags.
type GeneratorSettings struct {
	Platform Platform

	Config    string
	BuildType BuildType
	BuildMode BuildMode

	Combined     bool
	Run          bool
	Force        bool
	Direct       bool
	RDMD         bool
	TempBuild    bool
	ParallelBuild bool
	Watch        bool
	SyntaxOnly   bool

	RunArgs []string

	OnCompile CompletionFunc
	OnLink    CompletionFunc
	OnRun     CompletionFunc
}
