package queue

import (
	"errors"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultConfig(), wantErr: false},
		{name: "zero values", cfg: Config{}, wantErr: false},
		{name: "negative congestion", cfg: Config{CongestionThreshold: -1}, wantErr: true},
		{name: "negative dwell", cfg: Config{DwellThreshold: -time.Second}, wantErr: true},
		{name: "negative staleness", cfg: Config{StalenessWindow: -time.Minute}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("got %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.CongestionThreshold != 3 {
		t.Errorf("CongestionThreshold: got %d, want 3", cfg.CongestionThreshold)
	}
	if cfg.DwellThreshold != 5*time.Second {
		t.Errorf("DwellThreshold: got %v, want 5s", cfg.DwellThreshold)
	}
	if cfg.StalenessWindow <= 0 {
		t.Errorf("StalenessWindow must be positive, got %v", cfg.StalenessWindow)
	}
}
