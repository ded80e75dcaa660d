package services

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/ordelo-app/ordelo/utils"
)

// TierMonitor menjalankan sweep tier secara berkala di background.
type TierMonitor struct {
	tiers    *TierService
	interval time.Duration
	stopCh   chan struct{}
	once     sync.Once
}

// NewTierMonitor membuat monitor dengan interval sweep yang diberikan;
// interval <= 0 memakai default 24 jam.
func NewTierMonitor(db *gorm.DB, interval time.Duration) *TierMonitor {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &TierMonitor{
		tiers:    NewTierService(db),
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start memulai goroutine sweep. Sweep pertama berjalan setelah satu
// interval penuh, bukan saat start.
func (tm *TierMonitor) Start() {
	go tm.run()
	utils.InfoLogger.Printf("Tier monitor started with interval %s", tm.interval)
}

// Stop menghentikan loop sweep; aman dipanggil berulang.
func (tm *TierMonitor) Stop() {
	tm.once.Do(func() { close(tm.stopCh) })
}

func (tm *TierMonitor) run() {
	ticker := time.NewTicker(tm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			start := time.Now()
			tm.tiers.ProcessTierSweep()
			utils.InfoLogger.Printf("Tier sweep finished in %s", time.Since(start))
		case <-tm.stopCh:
			utils.InfoLogger.Println("Tier monitor stopped")
			return
		}
	}
}
