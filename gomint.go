// Package gomint compiles routing profiles and scores graph edges with them.
//
// A profile is a small declarative program that assigns penalties and cost
// factors to map edges based on their tags:
//
//	profile "bike" {
//	    define { base = 10 }
//	    way-penalty {
//	        when {
//	            [highway=motorway] => invalid
//	            [highway=cycleway] => 0
//	            else => base
//	        }
//	    }
//	}
//
// # Quick Start
//
//	dict := tagdict.New()
//	dict.InsertAll("highway", "motorway", "cycleway")
//
//	rt, err := gomint.Compile(src, dict)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	score, err := rt.Score(srcTags, dstTags, wayTags, globals)
//
// For a long-running router, a Loader memoises compiled profiles and can load
// them by name from a store.
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/sandrolain/gomint/pkg/parser
//   - Compiler: github.com/sandrolain/gomint/pkg/compiler
//   - Evaluator: github.com/sandrolain/gomint/pkg/evaluator
//   - Scoring: github.com/sandrolain/gomint/pkg/scoring
//   - Types: github.com/sandrolain/gomint/pkg/types
package gomint

import (
	"fmt"

	"github.com/sandrolain/gomint/pkg/parser"
	"github.com/sandrolain/gomint/pkg/scoring"
	"github.com/sandrolain/gomint/pkg/tagdict"
)

// Version returns the current version of gomint.
func Version() string {
	return "v0.1.0-dev"
}

// Compile parses profile source and builds a Runtime against dict.
//
// The returned Runtime is read-only and safe for concurrent use.
//
// Example:
//
//	rt, err := gomint.Compile(src, dict, scoring.WithGlobals("way.length"))
func Compile(source string, dict *tagdict.Dict, opts ...scoring.Option) (*scoring.Runtime, error) {
	profile, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return scoring.New(profile, dict, opts...)
}

// MustCompile is like Compile but panics if the profile cannot be compiled.
// It simplifies safe initialization of global variables.
func MustCompile(source string, dict *tagdict.Dict, opts ...scoring.Option) *scoring.Runtime {
	rt, err := Compile(source, dict, opts...)
	if err != nil {
		panic(fmt.Sprintf("gomint: Compile: %v", err))
	}
	return rt
}
