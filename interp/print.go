package interp

import (
	"context"
	"strconv"
	"strings"

	"github.com/jcorbin/retrobasic/ast"
	"github.com/jcorbin/retrobasic/eval"
	"github.com/jcorbin/retrobasic/vars"
)

// printZoneWidth is the classic microcomputer BASIC comma tab-stop
// width (spec.md §4.3.9: "comma inserts a tab stop").
const printZoneWidth = 14

func (in *Interpreter) execPrint(idx int, s *ast.Print) (int, error) {
	if s.File != nil {
		return in.execPrintFile(idx, s)
	}
	var b strings.Builder
	for _, item := range s.Items {
		v, err := eval.Evaluate(item.Expr, in)
		if err != nil {
			return idx, err
		}
		b.WriteString(v.String())
		in.outCol += len(v.String())
		switch item.Sep {
		case ",":
			pad := printZoneWidth - in.outCol%printZoneWidth
			b.WriteString(strings.Repeat(" ", pad))
			in.outCol += pad
		case ";":
			// no gap
		}
	}
	suppressNewline := len(s.Items) > 0 && s.Items[len(s.Items)-1].Sep != ""
	if !suppressNewline {
		b.WriteByte('\n')
		in.outCol = 0
	}
	if in.out != nil {
		if _, err := in.out.Write([]byte(b.String())); err != nil {
			return idx, err
		}
	}
	return idx + 1, nil
}

func (in *Interpreter) execPrintFile(idx int, s *ast.Print) (int, error) {
	fileNum, err := in.evalNumber(s.File)
	if err != nil {
		return idx, err
	}
	var b strings.Builder
	for i, item := range s.Items {
		v, err := eval.Evaluate(item.Expr, in)
		if err != nil {
			return idx, err
		}
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	if in.files == nil {
		return idx, runtimeErrf(ErrIllegalQuantity, in.lineAt(idx), "no file system peripheral attached")
	}
	if err := in.files.Print(int(fileNum), b.String()); err != nil {
		return idx, runtimeErrf(ErrIllegalQuantity, in.lineAt(idx), "%v", err)
	}
	return idx + 1, nil
}

func (in *Interpreter) execInput(ctx context.Context, idx int, s *ast.Input) (int, error) {
	if s.File != nil {
		return in.execInputFile(idx, s)
	}
	if s.Prompt != "" && in.out != nil {
		in.out.Write([]byte(s.Prompt))
		in.outCol += len(s.Prompt)
	}
	for _, name := range s.Vars {
		tok, err := in.input.Next(ctx)
		if err != nil {
			return idx, err
		}
		in.store.Set(name, coerceInput(name, tok))
	}
	return idx + 1, nil
}

func (in *Interpreter) execInputFile(idx int, s *ast.Input) (int, error) {
	fileNum, err := in.evalNumber(s.File)
	if err != nil {
		return idx, err
	}
	if in.files == nil {
		return idx, runtimeErrf(ErrIllegalQuantity, in.lineAt(idx), "no file system peripheral attached")
	}
	for _, name := range s.Vars {
		line, err := in.files.InputLine(int(fileNum))
		if err != nil {
			return idx, runtimeErrf(ErrOutOfData, in.lineAt(idx), "%v", err)
		}
		in.store.Set(name, coerceInput(name, line))
	}
	return idx + 1, nil
}

// coerceInput turns one raw host/file token into a Value for name's
// declared kind: a numeric variable parses the token, defaulting to 0
// on failure; a string variable keeps the raw text (spec.md §4.3.10).
func coerceInput(name, tok string) vars.Value {
	if vars.SuffixKind(name) == vars.String {
		return vars.StringValue(tok)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return vars.NumberValue(0)
	}
	return vars.NumberValue(n)
}
