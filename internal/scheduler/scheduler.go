// Package scheduler реализует одноразовые отложенные напоминания.
// Задания лежат в куче по времени срабатывания, фоновая горутина
// ждет ближайшее и зовет колбэк. Проверка «не заархивирована ли
// карточка» — дело колбэка, планировщик про карточки не знает.
package scheduler

import (
	"container/heap"
	"sync"
	"time"
)

// FireFunc вызывается ровно один раз на задание.
type FireFunc func(chatID int64, giveawayID string)

type job struct {
	chatID     int64
	giveawayID string
	fireAt     time.Time
}

type jobHeap []*job

func (h jobHeap) Len() int           { return len(h) }
func (h jobHeap) Less(i, j int) bool { return h[i].fireAt.Before(h[j].fireAt) }
func (h jobHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *jobHeap) Push(x any)        { *h = append(*h, x.(*job)) }
func (h *jobHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

type Scheduler struct {
	fire FireFunc

	mu   sync.Mutex
	jobs jobHeap

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func New(fire FireFunc) *Scheduler {
	return &Scheduler{
		fire: fire,
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start запускает фоновую горутину.
func (s *Scheduler) Start() {
	go s.run()
}

// Stop останавливает горутину; уже запланированные, но не
// сработавшие задания пропадают.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

// Schedule ставит напоминание через delay. Нулевая или отрицательная
// задержка не ошибка: задание сработает сразу, как получится.
func (s *Scheduler) Schedule(chatID int64, giveawayID string, delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	j := &job{
		chatID:     chatID,
		giveawayID: giveawayID,
		fireAt:     time.Now().Add(delay),
	}

	s.mu.Lock()
	heap.Push(&s.jobs, j)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) run() {
	defer close(s.done)

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		s.mu.Lock()
		var wait time.Duration
		hasJob := s.jobs.Len() > 0
		if hasJob {
			wait = time.Until(s.jobs[0].fireAt)
		}
		s.mu.Unlock()

		if !hasJob {
			select {
			case <-s.wake:
				continue
			case <-s.stop:
				return
			}
		}

		if wait <= 0 {
			s.fireDue()
			continue
		}

		timer.Reset(wait)
		select {
		case <-timer.C:
			s.fireDue()
		case <-s.wake:
			// Появилось задание, возможно более раннее — пересчитываем.
			if !timer.Stop() {
				<-timer.C
			}
		case <-s.stop:
			if !timer.Stop() {
				<-timer.C
			}
			return
		}
	}
}

// fireDue снимает с кучи все созревшие задания и запускает колбэки.
func (s *Scheduler) fireDue() {
	now := time.Now()

	s.mu.Lock()
	var due []*job
	for s.jobs.Len() > 0 && !s.jobs[0].fireAt.After(now) {
		due = append(due, heap.Pop(&s.jobs).(*job))
	}
	s.mu.Unlock()

	for _, j := range due {
		go s.fire(j.chatID, j.giveawayID)
	}
}
