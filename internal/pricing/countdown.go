package pricing

import (
	"context"
	"time"
)

// Countdown содержит остаток времени до окончания акции,
// разложенный на целые дни, часы, минуты и секунды.
type Countdown struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
	Expired bool  `json:"expired"`
}

// RemainingAt вычисляет остаток времени от now до end.
// Каждая компонента усекается вниз; остаток <= 0 означает истечение.
func RemainingAt(end, now time.Time) Countdown {
	d := end.Sub(now)
	if d <= 0 {
		return Countdown{Expired: true}
	}

	return Countdown{
		Days:    int64(d / (24 * time.Hour)),
		Hours:   int64(d % (24 * time.Hour) / time.Hour),
		Minutes: int64(d % time.Hour / time.Minute),
		Seconds: int64(d % time.Minute / time.Second),
	}
}

// WatchExpiry следит за пересечением границы end и вызывает onExpire ровно один раз.
// Проверка выполняется по фиксированному тику; после срабатывания или отмены
// контекста горутина завершается.
func WatchExpiry(ctx context.Context, end time.Time, tick time.Duration, onExpire func()) {
	go func() {
		if !time.Now().Before(end) {
			onExpire()
			return
		}

		ticker := time.NewTicker(tick)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !time.Now().Before(end) {
					onExpire()
					return
				}
			}
		}
	}()
}
