package interpreter

import (
	"mysorescript/pkg/ast"
	"mysorescript/pkg/rt"
)

// Interpret runs one statement. Statements never produce a value; they
// mutate Context state (bindings, the return register) instead (§4.8).
func (c *Context) Interpret(stmt ast.Statement) error {
	switch n := stmt.(type) {
	case *ast.Statements:
		return c.interpretStatements(n)
	case *ast.Decl:
		return c.interpretDecl(n)
	case *ast.Assignment:
		return c.interpretAssignment(n)
	case *ast.Return:
		return c.interpretReturn(n)
	case *ast.IfStatement:
		return c.interpretIf(n)
	case *ast.WhileLoop:
		return c.interpretWhile(n)
	case *ast.ClassDecl:
		return c.interpretClassDecl(n)
	case ast.Expression:
		// An expression used at statement position (e.g. a method call
		// issued only for its side effects) is just evaluated and its
		// result discarded.
		_, err := c.Evaluate(n)
		return err
	default:
		return &errUnhandledNode{Node: stmt}
	}
}

// interpretStatements runs its body in order, stopping as soon as a
// Return anywhere inside has raised the returning flag (§4.8).
func (c *Context) interpretStatements(n *ast.Statements) error {
	for _, s := range n.Body {
		if err := c.Interpret(s); err != nil {
			return err
		}
		if c.Returning() {
			return nil
		}
	}
	return nil
}

func (c *Context) interpretDecl(n *ast.Decl) error {
	v := rt.Null
	if n.Init != nil {
		var err error
		v, err = c.Evaluate(n.Init)
		if err != nil {
			return err
		}
	}
	c.Declare(n.Name, v)
	return nil
}

func (c *Context) interpretAssignment(n *ast.Assignment) error {
	v, err := c.Evaluate(n.Expr)
	if err != nil {
		return err
	}
	c.Assign(n.Target, v)
	return nil
}

func (c *Context) interpretReturn(n *ast.Return) error {
	v, err := c.Evaluate(n.Expr)
	if err != nil {
		return err
	}
	c.SetReturn(v)
	return nil
}

func (c *Context) interpretIf(n *ast.IfStatement) error {
	cond, err := c.Evaluate(n.Cond)
	if err != nil {
		return err
	}
	if rt.IsTruthy(cond) {
		return c.Interpret(n.Body)
	}
	return nil
}

func (c *Context) interpretWhile(n *ast.WhileLoop) error {
	for {
		cond, err := c.Evaluate(n.Cond)
		if err != nil {
			return err
		}
		if !rt.IsTruthy(cond) {
			return nil
		}
		if err := c.Interpret(n.Body); err != nil {
			return err
		}
		if c.Returning() {
			return nil
		}
	}
}

// interpretClassDecl registers a class and builds its method table. Each
// method's initial Function is a trampoline into the tree-walking
// evaluator, exactly like a freshly-constructed closure (§4.2, §4.6).
func (c *Context) interpretClassDecl(n *ast.ClassDecl) error {
	ivarNames := make([]string, len(n.IVars))
	for i, d := range n.IVars {
		ivarNames[i] = d.Name
	}

	cls, err := c.Classes.DeclareClass(n.Name, n.SuperclassName, ivarNames)
	if err != nil {
		return err
	}

	for _, m := range n.Methods {
		if len(m.Parameters) > rt.MaxArity {
			return &errArityTooLarge{Args: len(m.Parameters)}
		}
		sel := c.Classes.Intern(m.Name)
		cls.Methods = append(cls.Methods, &rt.Method{
			Selector: sel,
			Args:     len(m.Parameters),
			Function: c.methodTrampoline(m),
			Decl:     m,
		})
	}
	return nil
}

type errArityTooLarge struct{ Args int }

func (e *errArityTooLarge) Error() string {
	return "interpreter: closure or method declares too many parameters"
}
