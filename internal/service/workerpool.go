package service

import (
	"sync"
	"time"
)

type WorkerPool struct {
	jobsQueue  chan string
	wg         sync.WaitGroup
	numWorkers int

	pauseMu   sync.Mutex
	pauseCond *sync.Cond
	paused    bool
}

func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}

	wp := &WorkerPool{
		jobsQueue:  make(chan string, numWorkers),
		numWorkers: numWorkers,
	}

	wp.pauseCond = sync.NewCond(&wp.pauseMu)

	return wp
}

// run запускает воркеры, раздаёт задачи и ждёт завершения всех.
func (wp *WorkerPool) run(jobs []string, worker func(job string)) {
	wp.wg.Add(wp.numWorkers)
	for i := 0; i < wp.numWorkers; i++ {
		go func() {
			defer wp.wg.Done()
			for job := range wp.jobsQueue {
				wp.waitIfPaused()
				worker(job)
			}
		}()
	}

	for _, job := range jobs {
		wp.jobsQueue <- job
	}

	close(wp.jobsQueue)

	wp.wg.Wait()
}

func (wp *WorkerPool) waitIfPaused() {
	wp.pauseMu.Lock()
	for wp.paused {
		wp.pauseCond.Wait() // БЛОКИРУЕМСЯ до resume
	}
	wp.pauseMu.Unlock()
}

func (wp *WorkerPool) pausePoolWithTimer(duration time.Duration) {
	wp.pauseMu.Lock()
	defer wp.pauseMu.Unlock()

	if wp.paused {
		return
	}

	wp.paused = true

	time.AfterFunc(duration, wp.resumePool)
}

func (wp *WorkerPool) resumePool() {
	wp.pauseMu.Lock()
	defer wp.pauseMu.Unlock()

	if !wp.paused {
		return
	}

	wp.paused = false

	// разблокируем все воркеры
	wp.pauseCond.Broadcast()
}
