package builtin

import (
	"github.com/funvibe/uplc/internal/constant"
	"github.com/funvibe/uplc/internal/evaluator"
)

func init() {
	register("fstPair", 1, fstPair)
	register("sndPair", 1, sndPair)
	register("mkPairData", 2, mkPairData)
}

func fstPair(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	p, err := pairArg("fstPair", args, 0)
	if err != nil {
		return nil, err
	}
	return scalar(p.First), nil
}

func sndPair(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	p, err := pairArg("sndPair", args, 0)
	if err != nil {
		return nil, err
	}
	return scalar(p.Second), nil
}

func mkPairData(m *evaluator.Machine, args []evaluator.Value) (evaluator.Value, error) {
	first, err := dataArg("mkPairData", args, 0)
	if err != nil {
		return nil, err
	}
	second, err := dataArg("mkPairData", args, 1)
	if err != nil {
		return nil, err
	}
	return scalar(&constant.Pair{
		First:  &constant.DataConstant{Value: first},
		Second: &constant.DataConstant{Value: second},
	}), nil
}
