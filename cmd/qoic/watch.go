/*
NAME
  watch.go

DESCRIPTION
  watch.go implements the -watch CLI convenience: converting every new
  file dropped into a directory using a fixed in-format/out-format pair.
  This is a CLI-level feature layered on top of the core codec's
  single-shot conversion; the core codec itself is untouched by this
  file.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/ausocean/qoi/internal/qoiconfig"
	"github.com/ausocean/utils/logging"
)

// runWatch watches cfg.Watch for newly created files and converts each
// one from cfg.InFormat to cfg.OutFormat, writing the result alongside
// the source file with the output format's extension. It runs until the
// watcher's event or error channel is closed; watcher errors and a failed
// conversion of one file are logged and do not stop the loop.
func runWatch(cfg *qoiconfig.Config, log logging.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("qoic: could not create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(cfg.Watch); err != nil {
		return fmt.Errorf("qoic: could not watch %s: %w", cfg.Watch, err)
	}
	log.Info("watching directory for new files", "dir", cfg.Watch)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			handleWatchEvent(cfg, ev.Name, log)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err.Error())
		}
	}
}

// handleWatchEvent converts the file at path using cfg's format pair,
// naming the output after the source file's basename with the output
// format's extension. Failures are logged, not returned, so one bad
// input doesn't stop the watch loop.
func handleWatchEvent(cfg *qoiconfig.Config, path string, log logging.Logger) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	out := filepath.Join(filepath.Dir(path), base+"."+cfg.OutFormat)

	perFile := *cfg
	perFile.InFile = path
	perFile.OutFile = out

	log.Info("converting watched file", "in", path, "out", out)
	if err := convert(&perFile, log); err != nil {
		log.Error("could not convert watched file", "path", path, "error", err.Error())
		return
	}
	log.Info("converted watched file", "in", path, "out", out)
}
