package lang

import (
	"context"

	"github.com/oa-drill/evaluator/internal/process"
	"github.com/oa-drill/evaluator/internal/workspace"
)

// EntryClass is the class a JVM submission must declare.
const EntryClass = "Main"

// bytecode compiles into class files run by the JVM with the workspace as
// the classpath.
type bytecode struct {
	lang Language
	tc   Toolchain
}

func (s *bytecode) Language() Language { return s.lang }
func (s *bytecode) SourceFile() string { return EntryClass + ".java" }
func (s *bytecode) Tools() []string    { return []string{s.tc.Javac, s.tc.Java} }

func (s *bytecode) Compile(ctx context.Context, ws *workspace.Workspace, exec process.Executor) (*CompileResult, error) {
	args := make([]string, 0, len(s.tc.JavacFlags)+3)
	args = append(args, s.tc.JavacFlags...)
	args = append(args, "-d", ".", s.SourceFile())

	res, err := translate(ctx, ws, exec, s.tc, process.Spec{Path: s.tc.Javac, Args: args})
	if err != nil || res.Failed() {
		return res, err
	}
	// javac happily compiles a file whose public class has another name
	// when the class is package-private.
	if !ws.HasFile(EntryClass + ".class") {
		res.Error = "entry point class " + EntryClass + " not found"
	}
	return res, nil
}

func (s *bytecode) RunSpec(ws *workspace.Workspace) process.Spec {
	args := make([]string, 0, len(s.tc.JavaFlags)+3)
	args = append(args, s.tc.JavaFlags...)
	args = append(args, "-cp", ws.Path(), EntryClass)
	return process.Spec{Path: s.tc.Java, Args: args, Dir: ws.Path()}
}
