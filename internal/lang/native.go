package lang

import (
	"context"

	"github.com/oa-drill/evaluator/internal/process"
	"github.com/oa-drill/evaluator/internal/workspace"
)

const nativeBinary = "main"

// native compiles to an executable that is run directly.
type native struct {
	lang     Language
	source   string
	compiler string
	flags    []string
	libs     []string
	tc       Toolchain
}

func (s *native) Language() Language { return s.lang }
func (s *native) SourceFile() string { return s.source }
func (s *native) Tools() []string    { return []string{s.compiler} }

func (s *native) Compile(ctx context.Context, ws *workspace.Workspace, exec process.Executor) (*CompileResult, error) {
	args := make([]string, 0, len(s.flags)+len(s.libs)+3)
	args = append(args, s.flags...)
	args = append(args, s.source, "-o", nativeBinary)
	args = append(args, s.libs...)

	res, err := translate(ctx, ws, exec, s.tc, process.Spec{Path: s.compiler, Args: args})
	if err != nil || res.Failed() {
		return res, err
	}
	if !ws.HasFile(nativeBinary) {
		res.Error = "compiler produced no executable"
	}
	return res, nil
}

func (s *native) RunSpec(ws *workspace.Workspace) process.Spec {
	return process.Spec{Path: ws.FilePath(nativeBinary), Dir: ws.Path()}
}
