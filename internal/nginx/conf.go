// Package nginx は nginx 設定ファイルの一覧・退避・復帰を提供します。
package nginx

import (
	"os"
	"strings"
)

// InitBKPDir はバックアップディレクトリを作成します。既に存在していてもエラーにしません。
func InitBKPDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// ListConf は dir 直下の *.conf ファイル名を返します。サブディレクトリは辿りません。
func ListConf(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".conf") {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// ExtractServerName は conf ファイルから server_name の値を抽出します。
//
// TODO: server_name ディレクティブの解析は未実装。conf の文法を確定させてから
// 実装する。それまでは入力にかかわらず常に空を返します。
func ExtractServerName(confPath string) []string {
	return nil
}
