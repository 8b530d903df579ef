package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/ayusman/airpredict/internal/app"
	"github.com/ayusman/airpredict/internal/server"
	"github.com/ayusman/airpredict/internal/store"
	"github.com/ayusman/airpredict/internal/tray"
)

func main() {
	var (
		addr          = flag.String("addr", ":8080", "HTTP listen address")
		cameraID      = flag.Int("camera", 0, "camera device ID")
		alphabetModel = flag.String("alphabet-model", "", "path to the alphabet ONNX model")
		digitModel    = flag.String("digit-model", "", "path to the digit ONNX model")
		wordModel     = flag.String("word-model", "", "path to the next-word ONNX model")
		vocabPath     = flag.String("vocab", "", "path to the vocabulary JSON")
		speechCmd     = flag.String("speech-cmd", "", "text-to-speech command (empty disables speech)")
		noTray        = flag.Bool("no-tray", false, "run without the system tray")
	)
	flag.Parse()

	fmt.Println("AirPredict - Air Writing Recognition")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".airpredict")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "airpredict.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a := app.New(app.Config{
		Store:         st,
		CameraID:      *cameraID,
		AlphabetModel: *alphabetModel,
		DigitModel:    *digitModel,
		WordModel:     *wordModel,
		VocabPath:     *vocabPath,
		SpeechCommand: *speechCmd,
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	defer a.Stop()

	webDir := findWebDir(dataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir:  webDir,
		Store:      st,
		Camera:     a.Camera(),
		Controller: a,
		Events:     a.Events(),
	})

	fmt.Printf("Starting server on %s\n", *addr)
	go func() {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if *noTray {
		select {}
	}

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnOpenUI(func() { openBrowser("http://localhost" + *addr) })
	t.OnQuit(a.Stop)
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.airpredict/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
