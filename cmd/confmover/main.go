// Package main は nginx 設定ファイルを退避・復帰させる運用ツールです。
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yourusername/tiny-pea/internal/config"
	"github.com/yourusername/tiny-pea/internal/nginx"
)

func main() {
	nginxDir, backupDir := config.LoadDirs()
	mover := nginx.NewMover(nginxDir, backupDir)

	if len(os.Args) < 2 {
		fmt.Println("Usage: confmover [move|reload|list] ...")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "move":
		runMove(mover)
	case "reload":
		runReload(mover)
	case "list":
		runList(mover)
	default:
		fmt.Println("Unknown command. Use: move, reload, or list")
		os.Exit(1)
	}
}

// runMove はサイトの有効・無効を切り替えます。
func runMove(mover *nginx.Mover) {
	if len(os.Args) != 4 {
		fmt.Println("Usage: confmover move [backup|restore] [filename]")
		os.Exit(1)
	}

	action := nginx.Action(os.Args[2])
	src, dst, err := mover.Move(action, os.Args[3])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Success: moved %s -> %s\n", src, dst)
}

// runReload は設定テストに通った場合のみ nginx をリロードします。
func runReload(mover *nginx.Mover) {
	if err := mover.Reload(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Nginx reloaded successfully")
}

// runList は有効・無効それぞれの conf ファイルをJSONで出力します。
func runList(mover *nginx.Mover) {
	files := mover.List()

	output, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		fmt.Println("Error generating JSON")
		os.Exit(1)
	}
	fmt.Println(string(output))
}
