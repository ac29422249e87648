package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"streamflix/internal/config"
	"streamflix/internal/db"
	"streamflix/internal/models"
	"streamflix/internal/repository"
	"streamflix/internal/signer"
	"streamflix/internal/transcode"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg := config.Load()
	db.InitMongo(cfg)

	nodeID := os.Getenv("NODE_ID")
	if nodeID == "" {
		nodeID = "?"
	}

	videoRepo := repository.NewVideoRepository()
	urlSigner := signer.New(cfg.URLSigningKey)

	// =========================
	// Listener TCP de tareas
	// =========================
	ln, err := net.Listen("tcp", cfg.AssetTCPAddr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[assetd %s] tareas TCP en %s", nodeID, cfg.AssetTCPAddr)

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				log.Println("accept error:", err)
				continue
			}
			go handleConn(nodeID, conn, cfg.AssetRoot, videoRepo)
		}
	}()

	// =========================
	// HTTP de streaming firmado
	// =========================
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/stream/{videoId}/{file}", streamHandler(cfg.AssetRoot, urlSigner))

	log.Printf("[assetd %s] streaming HTTP en :%s", nodeID, cfg.AssetHTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AssetHTTPPort, r))
}

// streamHandler sirve un archivo de rendition validando la URL prefirmada.
func streamHandler(assetRoot string, sg *signer.Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sg.Verify(r.URL.Path, r.URL.Query(), time.Now()); err != nil {
			if errors.Is(err, signer.ErrExpired) {
				http.Error(w, "signed url expired", http.StatusGone)
				return
			}
			http.Error(w, "invalid signature", http.StatusForbidden)
			return
		}

		videoID, err := strconv.Atoi(chi.URLParam(r, "videoId"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		file := chi.URLParam(r, "file")
		// sin path traversal: el nombre viene de un segmento de URL,
		// igual lo saneamos
		if file != filepath.Base(file) {
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(assetRoot, strconv.Itoa(videoID), file)
		f, err := os.Open(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "video/mp4")
		// ServeContent maneja los Range requests del player
		http.ServeContent(w, r, file, info.ModTime(), f)
	}
}

// ============================================
// Lado TCP: preparar renditions de un video
// ============================================

func handleConn(nodeID string, conn net.Conn, assetRoot string, videos *repository.VideoRepository) {
	defer conn.Close()

	dec := json.NewDecoder(bufio.NewReader(conn))
	var task transcode.PrepareTask
	if err := dec.Decode(&task); err != nil {
		log.Printf("[assetd %s] decode task error: %v", nodeID, err)
		return
	}

	log.Printf("[assetd %s] tarea recibida: video=%d source=%s", nodeID, task.VideoID, task.SourceKey)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// marcamos processing mientras trabajamos
	_ = videos.UpdateAsset(ctx, task.VideoID, &models.AssetInfo{
		Status:    models.AssetStatusProcessing,
		SourceKey: task.SourceKey,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})

	start := time.Now()
	renditions, err := prepareRenditions(assetRoot, task)

	resp := transcode.PrepareResult{VideoID: task.VideoID}
	if err != nil {
		log.Printf("[assetd %s] prepare error: video=%d err=%v", nodeID, task.VideoID, err)
		resp.Status = models.AssetStatusFailed
		resp.Error = err.Error()
	} else {
		log.Printf("[assetd %s] completado: video=%d renditions=%d tiempo=%s",
			nodeID, task.VideoID, len(renditions), time.Since(start))
		resp.Status = models.AssetStatusReady
		resp.Renditions = renditions
	}

	// persistimos el resultado también acá: si el API se cayó mientras
	// trabajábamos, el estado queda igual consistente en Mongo
	asset := &models.AssetInfo{
		Status:    resp.Status,
		SourceKey: task.SourceKey,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if resp.Status == models.AssetStatusReady {
		asset.Renditions = resp.Renditions
	} else {
		asset.Error = resp.Error
	}
	if err := videos.UpdateAsset(ctx, task.VideoID, asset); err != nil {
		log.Printf("[assetd %s] error guardando asset en Mongo: %v", nodeID, err)
	}

	if err := json.NewEncoder(conn).Encode(&resp); err != nil {
		log.Printf("[assetd %s] encode resp error: %v", nodeID, err)
	}
}

// prepareRenditions materializa la escalera de renditions para un video.
// TODO: integrar un transcodificador real (ffmpeg); por ahora cada rendition
// es una copia del archivo fuente con su nombre final.
func prepareRenditions(assetRoot string, task transcode.PrepareTask) ([]models.Rendition, error) {
	src := filepath.Join(assetRoot, task.SourceKey)
	info, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("archivo fuente no disponible: %w", err)
	}

	ladder := task.Renditions
	if len(ladder) == 0 {
		ladder = transcode.DefaultLadder
	}

	outDir := filepath.Join(assetRoot, strconv.Itoa(task.VideoID))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	out := make([]models.Rendition, 0, len(ladder))
	for _, r := range ladder {
		r.File = r.Name + ".mp4"
		r.SizeBytes = info.Size()

		dst := filepath.Join(outDir, r.File)
		if err := linkOrCopy(src, dst); err != nil {
			return nil, fmt.Errorf("rendition %s: %w", r.Name, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// linkOrCopy intenta hard link (mismo filesystem) y si no, copia.
func linkOrCopy(src, dst string) error {
	_ = os.Remove(dst)
	if err := os.Link(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
