// Package scheduler реализует периодические задания обслуживания.
//
// Единственное задание — ежедневный сброс счётчиков DailySpend
// в координационном состоянии. Сброс выполняется по cron-выражению
// (по умолчанию в полночь UTC) и проходит через тот же Update-цикл
// Store, что и резервирование бюджета.
//
// Использование:
//
//	sched, err := scheduler.New(scheduler.Config{
//	    Store:  store,
//	    Logger: logger,
//	})
//	if err != nil {
//	    return err
//	}
//	if err := sched.Start(ctx); err != nil {
//	    return err
//	}
//	defer sched.Stop()
package scheduler
