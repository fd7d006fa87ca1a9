package cmd

import (
	"strings"
	"testing"

	config "taskboard.com/taskboard/internal/configs"
)

func TestCheckReportConfig(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		token   string
		wantErr string
	}{
		{name: "memory driver", driver: config.DriverMemory, token: "t1", wantErr: "STORAGE_DRIVER=memory"},
		{name: "missing token", driver: config.DriverSQLite, wantErr: "--token"},
		{name: "sqlite", driver: config.DriverSQLite, token: "t1"},
		{name: "redis", driver: config.DriverRedis, token: "t1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkReportConfig(config.Config{StorageDriver: tt.driver}, tt.token)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected an error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}
