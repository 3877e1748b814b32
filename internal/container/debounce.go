package container

import (
	"sync"
	"time"
)

// Debouncer реализует дисциплину cancel-and-restart: каждый новый ввод
// перезапускает таймер, наружу уходит только последнее значение тихого
// окна. Таймерная горутина лишь кладет значение в канал; применяет его
// цикл команд, так что состояние контейнера трогает одна горутина.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fired chan string
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay: delay,
		fired: make(chan string, 1),
	}
}

// Push откладывает доставку value; предыдущий незаконченный отсчёт
// отменяется.
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.deliver(value)
	})
}

// Fired отдает канал с дозревшими значениями. Канал держит одно,
// последнее значение; читать его нужно неблокирующим select.
func (d *Debouncer) Fired() <-chan string {
	return d.fired
}

// Stop отменяет незаконченный отсчёт и выбрасывает недоставленное
// значение, если оно есть.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	select {
	case <-d.fired:
	default:
	}
}

// deliver кладет value в канал, вытесняя недоставленное старое
// значение. Под мьютексом отправка в канал ёмкости 1 не блокирует.
func (d *Debouncer) deliver(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	select {
	case <-d.fired:
	default:
	}
	d.fired <- value
}
