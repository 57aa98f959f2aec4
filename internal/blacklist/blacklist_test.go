package blacklist

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_AddAndContains(t *testing.T) {
	s := NewStore()

	assert.False(t, s.ContainsSymbol("FOO"))
	assert.False(t, s.ContainsAddress("Dev111"))

	s.AddSymbol("FOO")
	s.AddAddress("Dev111")

	assert.True(t, s.ContainsSymbol("FOO"))
	assert.True(t, s.ContainsAddress("Dev111"))
	assert.False(t, s.ContainsSymbol("BAR"))
}

func TestStore_IdempotentAdds(t *testing.T) {
	s := NewStore()

	s.AddSymbol("FOO")
	s.AddSymbol("FOO")
	s.AddAddress("Dev111")
	s.AddAddress("Dev111")

	syms, addrs := s.Size()
	assert.Equal(t, 1, syms)
	assert.Equal(t, 1, addrs)
}

func TestStore_IgnoresEmptyEntries(t *testing.T) {
	s := NewStore()

	s.AddSymbol("")
	s.AddAddress("")
	s.Seed([]string{"", "FOO"}, []string{""})

	syms, addrs := s.Size()
	assert.Equal(t, 1, syms)
	assert.Equal(t, 0, addrs)
	assert.False(t, s.ContainsSymbol(""))
}

func TestStore_Seed(t *testing.T) {
	s := NewStore()
	s.Seed([]string{"SCAM", "RUG"}, []string{"DevBad"})

	assert.True(t, s.ContainsSymbol("SCAM"))
	assert.True(t, s.ContainsSymbol("RUG"))
	assert.True(t, s.ContainsAddress("DevBad"))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.AddSymbol("FOO")
				s.ContainsSymbol("FOO")
				s.AddAddress("Dev111")
				s.ContainsAddress("Dev111")
			}
		}()
	}
	wg.Wait()

	syms, addrs := s.Size()
	assert.Equal(t, 1, syms)
	assert.Equal(t, 1, addrs)
}
