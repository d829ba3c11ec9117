package config

import "testing"

func TestInitDefaults(t *testing.T) {
	C = AppConfig{}
	// no config file and no bot_token in the test environment, but the
	// defaults are unmarshalled before Init rejects the missing token
	if err := Init(); err == nil {
		t.Fatal("Expected Init to fail without a bot token")
	}

	if C.UseCaptionFilter {
		t.Error("Caption matching should be opt-in")
	}
	if C.MaxResults != 10 {
		t.Errorf("MaxResults = %d, want 10", C.MaxResults)
	}
	if C.CacheTime != 300 {
		t.Errorf("CacheTime = %d, want 300", C.CacheTime)
	}
	if C.Engine.Type != "meilisearch" {
		t.Errorf("Engine.Type = %q", C.Engine.Type)
	}
}
