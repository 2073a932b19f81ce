package app

import (
	"bytes"
	"testing"
)

// TestRun_MigrateCommand_RequiresDB はmigrateコマンドがDB接続を試みることを検証する。
// テスト環境ではDB接続が失敗するため、エラーが返ることを許容する。
func TestRun_MigrateCommand_RequiresDB(t *testing.T) {
	setTestEnv(t)

	var buf bytes.Buffer
	err := Run(&buf, []string{"migrate"})
	if err == nil {
		// CI/ローカルにDBがある場合はここに到達する可能性がある。
		t.Log("Run(migrate) succeeded - DB is available in test environment")
	}
}

func TestRun_WithMissingEnv_ReturnsError(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	var buf bytes.Buffer
	err := Run(&buf, []string{"serve"})
	if err == nil {
		t.Fatal("Run with missing env should return error")
	}
}

// TestRun_HealthcheckCommand_NoServer はサーバー未起動時のhealthcheckがエラーになることを検証する。
// healthcheckは設定のフル初期化をスキップするため、必須環境変数は不要。
func TestRun_HealthcheckCommand_NoServer(t *testing.T) {
	t.Setenv("SERVER_PORT", "59999")

	var buf bytes.Buffer
	if err := Run(&buf, []string{"healthcheck"}); err == nil {
		t.Error("expected error when no server is listening")
	}
}
