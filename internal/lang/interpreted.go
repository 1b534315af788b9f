package lang

import (
	"context"

	"github.com/oa-drill/evaluator/internal/process"
	"github.com/oa-drill/evaluator/internal/workspace"
)

type interpreted struct {
	lang   Language
	source string
	interp string
	flags  []string
}

func (s *interpreted) Language() Language { return s.lang }
func (s *interpreted) SourceFile() string { return s.source }
func (s *interpreted) Tools() []string    { return []string{s.interp} }

func (s *interpreted) Compile(context.Context, *workspace.Workspace, process.Executor) (*CompileResult, error) {
	return nil, nil
}

func (s *interpreted) RunSpec(ws *workspace.Workspace) process.Spec {
	args := make([]string, 0, len(s.flags)+1)
	args = append(args, s.flags...)
	args = append(args, s.source)
	return process.Spec{Path: s.interp, Args: args, Dir: ws.Path()}
}
