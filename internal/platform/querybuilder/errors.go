package querybuilder

import "fmt"

func errMissingExprArg(expr string) error {
	return fmt.Errorf("expression %q has more placeholders than args", expr)
}

func errExtraExprArgs(expr string, extra int) error {
	return fmt.Errorf("expression %q leaves %d args unbound", expr, extra)
}
