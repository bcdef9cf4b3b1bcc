package nginx

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Action はサイトの有効・無効の切り替え方向です。
type Action string

const (
	// ActionBackup はサイトを無効化します（nginx → backup）。
	ActionBackup Action = "backup"
	// ActionRestore はサイトを有効化します（backup → nginx）。
	ActionRestore Action = "restore"
)

// FileData は list 出力の1件分です。
type FileData struct {
	Filename   string `json:"filename"`
	ServerName string `json:"server_name"`
	CurrentDir string `json:"current_dir"`
}

// Mover は nginx ディレクトリとバックアップディレクトリの間で conf ファイルを移動します。
type Mover struct {
	NginxDir  string
	BackupDir string
}

// NewMover は Mover を作成します。
func NewMover(nginxDir, backupDir string) *Mover {
	return &Mover{
		NginxDir:  nginxDir,
		BackupDir: backupDir,
	}
}

// Move は filename の conf を action の方向へ移動し、移動元と移動先のパスを返します。
// 拡張子 .conf が付いていない場合は補います。
func (m *Mover) Move(action Action, filename string) (src string, dst string, err error) {
	name := filepath.Base(filename)
	if !strings.HasSuffix(name, ".conf") {
		name += ".conf"
	}

	switch action {
	case ActionBackup:
		src = filepath.Join(m.NginxDir, name)
		dst = filepath.Join(m.BackupDir, name)
		if err := InitBKPDir(m.BackupDir); err != nil {
			return "", "", fmt.Errorf("failed to create backup directory: %w", err)
		}
	case ActionRestore:
		src = filepath.Join(m.BackupDir, name)
		dst = filepath.Join(m.NginxDir, name)
		if err := os.MkdirAll(m.NginxDir, 0o755); err != nil {
			return "", "", fmt.Errorf("failed to create nginx directory: %w", err)
		}
	default:
		return "", "", fmt.Errorf("invalid action: %s", action)
	}

	if _, err := os.Stat(src); os.IsNotExist(err) {
		return "", "", fmt.Errorf("source file does not exist: %s", src)
	}

	if err := os.Rename(src, dst); err != nil {
		return "", "", fmt.Errorf("failed to move file: %w", err)
	}
	return src, dst, nil
}

// Reload は設定テスト（nginx -t）の成功を確認してから nginx をリロードします。
func (m *Mover) Reload() error {
	if output, err := exec.Command("nginx", "-t").CombinedOutput(); err != nil {
		return fmt.Errorf("nginx config test failed: %s", output)
	}
	if output, err := exec.Command("systemctl", "reload", "nginx").CombinedOutput(); err != nil {
		return fmt.Errorf("failed to reload nginx: %s", output)
	}
	return nil
}

// List は有効・無効それぞれの conf ファイルの一覧を返します。
// 存在しないディレクトリは読み飛ばします。server_name は抽出が未実装の間 "unknown" になります。
func (m *Mover) List() []FileData {
	var files []FileData

	for _, dir := range []string{m.NginxDir, m.BackupDir} {
		names, err := ListConf(dir)
		if err != nil {
			continue
		}

		for _, name := range names {
			serverName := "unknown"
			if extracted := ExtractServerName(filepath.Join(dir, name)); len(extracted) > 0 {
				serverName = strings.Join(extracted, " ")
			}
			files = append(files, FileData{
				Filename:   name,
				ServerName: serverName,
				CurrentDir: dir,
			})
		}
	}
	return files
}
