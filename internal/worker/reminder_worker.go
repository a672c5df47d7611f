package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"farmhub/internal/service"
)

// ReminderWorker turns vaccinations that have come due into farmer tasks.
// Each vaccine is reminded at most once.
type ReminderWorker struct {
	vaccineSvc *service.VaccineService
	taskSvc    *service.TaskService
	interval   time.Duration
	batchSize  int
	now        func() time.Time
}

func NewReminderWorker(vaccineSvc *service.VaccineService, taskSvc *service.TaskService, interval time.Duration) *ReminderWorker {
	return &ReminderWorker{
		vaccineSvc: vaccineSvc,
		taskSvc:    taskSvc,
		interval:   interval,
		batchSize:  20,
		now:        time.Now,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	slog.Info("starting vaccine reminder worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("vaccine reminder worker stopped")
			return
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				slog.Error("reminder batch failed", "error", err)
			}
		}
	}
}

func (w *ReminderWorker) processBatch(ctx context.Context) error {
	due, err := w.vaccineSvc.GetDue(ctx, w.now(), w.batchSize)
	if err != nil {
		return fmt.Errorf("get due vaccines: %w", err)
	}

	for _, d := range due {
		title := fmt.Sprintf("Vaccination due: %s for animal %s", d.Name, d.AnimalTag)
		details := fmt.Sprintf("The %s vaccination for animal %s was due on %s.",
			d.Name, d.AnimalTag, d.NextDue.Format("2006-01-02"))

		if _, err := w.taskSvc.Create(ctx, d.FarmerID, title, details, &d.NextDue); err != nil {
			slog.Error("failed to create reminder task", "vaccine", d.VaccineID, "error", err)
			continue
		}
		if err := w.vaccineSvc.MarkReminded(ctx, d.VaccineID); err != nil {
			slog.Error("failed to mark vaccine reminded", "vaccine", d.VaccineID, "error", err)
			continue
		}
		slog.Info("reminder task created", "vaccine", d.VaccineID, "farmer", d.FarmerID)
	}

	return nil
}
