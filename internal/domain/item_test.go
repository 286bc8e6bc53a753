package domain

import (
	"testing"
	"time"
)

func TestTieredItem_Expired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name string
		item TieredItem
		want bool
	}{
		{"ephemeral past ttl", TieredItem{Tier: TierEphemeral, TTL: &past}, true},
		{"ephemeral future ttl", TieredItem{Tier: TierEphemeral, TTL: &future}, false},
		{"ephemeral no ttl", TieredItem{Tier: TierEphemeral}, false},
		{"durable never expires", TieredItem{Tier: TierDurable, TTL: &past}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.item.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}
