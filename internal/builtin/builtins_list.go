package builtin

import (
	"github.com/funvibe/uplc/internal/constant"
	"github.com/funvibe/uplc/internal/evaluator"
)

func init() {
	register("chooseList", 3, chooseList)
	register("mkCons", 2, mkCons)
	register("headList", 1, headList)
	register("tailList", 1, tailList)
	register("nullList", 1, nullList)
	register("mkNilData", 1, mkNilData)
	register("mkNilPairData", 1, mkNilPairData)
}

func chooseList(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	l, err := listArg("chooseList", args, 0)
	if err != nil {
		return nil, err
	}
	if len(l.Items) == 0 {
		return args[1], nil
	}
	return args[2], nil
}

func mkCons(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	head, err := constArg("mkCons", args, 0)
	if err != nil {
		return nil, err
	}
	l, err := listArg("mkCons", args, 1)
	if err != nil {
		return nil, err
	}
	if !head.Type().Equal(l.Elem) {
		return nil, evaluator.BuiltinErrorf("mkCons", "cannot prepend %s to (list %s)", head.Type(), l.Elem)
	}
	items := make([]constant.Constant, 0, len(l.Items)+1)
	items = append(items, head)
	items = append(items, l.Items...)
	return scalar(&constant.List{Elem: l.Elem, Items: items}), nil
}

func headList(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	l, err := listArg("headList", args, 0)
	if err != nil {
		return nil, err
	}
	if len(l.Items) == 0 {
		return nil, evaluator.BuiltinErrorf("headList", "empty list")
	}
	return scalar(l.Items[0]), nil
}

func tailList(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	l, err := listArg("tailList", args, 0)
	if err != nil {
		return nil, err
	}
	if len(l.Items) == 0 {
		return nil, evaluator.BuiltinErrorf("tailList", "empty list")
	}
	return scalar(&constant.List{Elem: l.Elem, Items: l.Items[1:]}), nil
}

func nullList(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	l, err := listArg("nullList", args, 0)
	if err != nil {
		return nil, err
	}
	return boolean(len(l.Items) == 0), nil
}

func mkNilData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	if err := unitArg("mkNilData", args, 0); err != nil {
		return nil, err
	}
	return scalar(&constant.List{Elem: constant.TData}), nil
}

func mkNilPairData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	if err := unitArg("mkNilPairData", args, 0); err != nil {
		return nil, err
	}
	return scalar(&constant.List{Elem: constant.TPair(constant.TData, constant.TData)}), nil
}
