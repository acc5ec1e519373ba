package service

import (
	"GiftHunt/internal/metrics"
	"context"
	"fmt"

	"go.uber.org/zap"
)

// step — шаг многошаговой операции без общей транзакции.
// Ошибка обязательного шага прерывает операцию, остальные только логируются.
type step struct {
	name     string
	required bool
	run      func(ctx context.Context) error
}

func runSteps(ctx context.Context, logger *zap.SugaredLogger, op string, steps []step) error {
	for _, st := range steps {
		err := st.run(ctx)
		if err == nil {
			logger.Debugw("step done", "op", op, "step", st.name)
			continue
		}
		if st.required {
			return fmt.Errorf("%s: %s: %w", op, st.name, err)
		}
		metrics.SideEffectFailures.WithLabelValues(st.name).Inc()
		logger.Warnw("step failed, continuing", "op", op, "step", st.name, "error", err)
	}
	return nil
}
