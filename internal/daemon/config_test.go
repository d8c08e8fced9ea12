package daemon

import "testing"

func TestDefaults(t *testing.T) {
	// Neutralize any ambient overrides.
	for _, env := range []string{"INKWELL_PORT", "INKWELL_DATA_DIR", "INKWELL_STORE", "INKWELL_RECENT_CAPACITY"} {
		t.Setenv(env, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 4520 {
		t.Errorf("Port = %d, want 4520", cfg.Port)
	}
	if cfg.Store != "sqlite" {
		t.Errorf("Store = %q, want sqlite", cfg.Store)
	}
	if cfg.RecentCapacity != 12 {
		t.Errorf("RecentCapacity = %d, want 12", cfg.RecentCapacity)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir is empty")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INKWELL_PORT", "9000")
	t.Setenv("INKWELL_STORE", "file")
	t.Setenv("INKWELL_DATA_DIR", "/tmp/inkwell-test")
	t.Setenv("INKWELL_RECENT_CAPACITY", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.Store != "file" {
		t.Errorf("Store = %q, want file", cfg.Store)
	}
	if cfg.DataDir != "/tmp/inkwell-test" {
		t.Errorf("DataDir = %q, want /tmp/inkwell-test", cfg.DataDir)
	}
	if cfg.RecentCapacity != 5 {
		t.Errorf("RecentCapacity = %d, want 5", cfg.RecentCapacity)
	}
}

func TestInvalidValuesRejected(t *testing.T) {
	cases := []struct {
		env   string
		value string
	}{
		{"INKWELL_PORT", "not-a-port"},
		{"INKWELL_STORE", "etcd"},
		{"INKWELL_RECENT_CAPACITY", "0"},
		{"INKWELL_RECENT_CAPACITY", "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.env+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.env, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load with %s=%q succeeded, want error", tc.env, tc.value)
			}
		})
	}
}
