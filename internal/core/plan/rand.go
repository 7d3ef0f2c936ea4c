package plan

import (
	"math/rand"
	"sync"
)

// lockedSource 互斥鎖保護的隨機來源
// 守衛是按使用者分的，不同使用者的生成／換餐可以同時進行，
// 而 rand.Rand 本身不能併發使用，所以來源必須自己上鎖
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}

// NewLockedRand 創建可安全共用的 rand.Rand，種子顯式注入以便測試
func NewLockedRand(seed int64) *rand.Rand {
	return rand.New(&lockedSource{src: rand.NewSource(seed).(rand.Source64)})
}
