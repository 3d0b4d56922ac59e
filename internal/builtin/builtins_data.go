package builtin

import (
	"math/big"

	"github.com/funvibe/uplc/internal/constant"
	"github.com/funvibe/uplc/internal/evaluator"
)

func init() {
	register("chooseData", 6, chooseData)
	register("constrData", 2, constrData)
	register("mapData", 1, mapData)
	register("listData", 1, listData)
	register("iData", 1, iData)
	register("bData", 1, bData)
	register("unConstrData", 1, unConstrData)
	register("unMapData", 1, unMapData)
	register("unListData", 1, unListData)
	register("unIData", 1, unIData)
	register("unBData", 1, unBData)
	register("equalsData", 2, equalsData)
	register("serialiseData", 1, serialiseData)
}

// chooseData dispatches on the head of a Data value: one continuation per
// node shape, in Constr/Map/List/I/B order.
func chooseData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	d, err := dataArg("chooseData", args, 0)
	if err != nil {
		return nil, err
	}
	switch d.(type) {
	case *constant.ConstrData:
		return args[1], nil
	case *constant.MapData:
		return args[2], nil
	case *constant.ListData:
		return args[3], nil
	case *constant.IData:
		return args[4], nil
	case *constant.BData:
		return args[5], nil
	}
	return nil, evaluator.BuiltinErrorf("chooseData", "unrecognized data node %T", d)
}

func constrData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	tag, err := intArg("constrData", args, 0)
	if err != nil {
		return nil, err
	}
	fields, err := dataListArg("constrData", args, 1)
	if err != nil {
		return nil, err
	}
	if tag.Sign() < 0 || !tag.IsUint64() {
		return nil, evaluator.BuiltinErrorf("constrData", "constructor tag %s out of range", tag)
	}
	return dataValue(&constant.ConstrData{Tag: tag.Uint64(), Fields: fields}), nil
}

func mapData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	l, err := listArg("mapData", args, 0)
	if err != nil {
		return nil, err
	}
	if !l.Elem.Equal(constant.TPair(constant.TData, constant.TData)) {
		return nil, evaluator.BuiltinErrorf("mapData", "expected (list (pair data data)), got %s", l.Type())
	}
	pairs := make([]constant.DataPair, 0, len(l.Items))
	for _, item := range l.Items {
		p := item.(*constant.Pair)
		pairs = append(pairs, constant.DataPair{
			Key:   p.First.(*constant.DataConstant).Value,
			Value: p.Second.(*constant.DataConstant).Value,
		})
	}
	return dataValue(&constant.MapData{Pairs: pairs}), nil
}

func listData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	items, err := dataListArg("listData", args, 0)
	if err != nil {
		return nil, err
	}
	return dataValue(&constant.ListData{Items: items}), nil
}

func iData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	n, err := intArg("iData", args, 0)
	if err != nil {
		return nil, err
	}
	return dataValue(&constant.IData{Value: n}), nil
}

func bData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	b, err := bytesArg("bData", args, 0)
	if err != nil {
		return nil, err
	}
	return dataValue(&constant.BData{Value: b}), nil
}

func unConstrData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	d, err := dataArg("unConstrData", args, 0)
	if err != nil {
		return nil, err
	}
	c, ok := d.(*constant.ConstrData)
	if !ok {
		return nil, evaluator.BuiltinErrorf("unConstrData", "expected Constr, got %s", d)
	}
	items := make([]constant.Constant, 0, len(c.Fields))
	for _, f := range c.Fields {
		items = append(items, &constant.DataConstant{Value: f})
	}
	return scalar(&constant.Pair{
		First:  &constant.Integer{Value: new(big.Int).SetUint64(c.Tag)},
		Second: &constant.List{Elem: constant.TData, Items: items},
	}), nil
}

func unMapData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	d, err := dataArg("unMapData", args, 0)
	if err != nil {
		return nil, err
	}
	mp, ok := d.(*constant.MapData)
	if !ok {
		return nil, evaluator.BuiltinErrorf("unMapData", "expected Map, got %s", d)
	}
	items := make([]constant.Constant, 0, len(mp.Pairs))
	for _, p := range mp.Pairs {
		items = append(items, &constant.Pair{
			First:  &constant.DataConstant{Value: p.Key},
			Second: &constant.DataConstant{Value: p.Value},
		})
	}
	return scalar(&constant.List{Elem: constant.TPair(constant.TData, constant.TData), Items: items}), nil
}

func unListData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	d, err := dataArg("unListData", args, 0)
	if err != nil {
		return nil, err
	}
	l, ok := d.(*constant.ListData)
	if !ok {
		return nil, evaluator.BuiltinErrorf("unListData", "expected List, got %s", d)
	}
	items := make([]constant.Constant, 0, len(l.Items))
	for _, item := range l.Items {
		items = append(items, &constant.DataConstant{Value: item})
	}
	return scalar(&constant.List{Elem: constant.TData, Items: items}), nil
}

func unIData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	d, err := dataArg("unIData", args, 0)
	if err != nil {
		return nil, err
	}
	n, ok := d.(*constant.IData)
	if !ok {
		return nil, evaluator.BuiltinErrorf("unIData", "expected I, got %s", d)
	}
	return integer(n.Value), nil
}

func unBData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	d, err := dataArg("unBData", args, 0)
	if err != nil {
		return nil, err
	}
	b, ok := d.(*constant.BData)
	if !ok {
		return nil, evaluator.BuiltinErrorf("unBData", "expected B, got %s", d)
	}
	return bytestring(b.Value), nil
}

func equalsData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	a, err := dataArg("equalsData", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := dataArg("equalsData", args, 1)
	if err != nil {
		return nil, err
	}
	return boolean(constant.DataEqual(a, b)), nil
}

func serialiseData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	d, err := dataArg("serialiseData", args, 0)
	if err != nil {
		return nil, err
	}
	return bytestring(constant.SerialiseData(d)), nil
}

// dataListArg projects a (list data) argument into its Data items.
func dataListArg(name string, args []evaluator.Value, idx int) ([]constant.Data, error) {
	l, err := listArg(name, args, idx)
	if err != nil {
		return nil, err
	}
	if !l.Elem.Equal(constant.TData) {
		return nil, evaluator.BuiltinErrorf(name, "argument %d: expected (list data), got %s", idx+1, l.Type())
	}
	items := make([]constant.Data, 0, len(l.Items))
	for _, item := range l.Items {
		items = append(items, item.(*constant.DataConstant).Value)
	}
	return items, nil
}
