package scheduler

import (
	"fmt"

	"github.com/vnykmshr/taskring/pkg/common/validation"
	"github.com/vnykmshr/taskring/pkg/scheduling/workerpool"
)

// AddCron schedules task on a recurring cron expression. The parser accepts
// six fields with a leading seconds field, e.g. "*/5 * * * * *" for every
// five seconds.
//
// A recurring entry re-enters the pending list with its next fire time after
// every dispatch. Because recurring entries never drain on their own, they
// are dropped when Shutdown is called; only one-shot entries participate in
// the drain-to-completion guarantee.
func (s *scheduler) AddCron(expr string, task workerpool.Task) error {
	if err := validation.ValidateNotEmpty("scheduler", "cron", expr); err != nil {
		return err
	}
	if err := validation.ValidateNotNil("scheduler", "task", task); err != nil {
		return err
	}

	schedule, err := s.cronParser.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	now := s.clock.Now().In(s.location)
	s.intake.Push(entry{
		runAt:    schedule.Next(now),
		task:     task,
		schedule: schedule,
	})

	if s.registry != nil {
		s.registry.CronScheduled.WithLabelValues(s.name).Inc()
	}
	return nil
}
