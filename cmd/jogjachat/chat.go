package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/liliang-cn/jogjachat/internal/classifier"
	"github.com/liliang-cn/jogjachat/internal/client"
	"github.com/liliang-cn/jogjachat/internal/dialogue"
	"github.com/liliang-cn/jogjachat/internal/render"
	"github.com/liliang-cn/jogjachat/internal/speech"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const chatHelp = `Perintah:
  /1 /2 /3  kirim saran pertanyaan
  /voice    nyalakan atau matikan suara
  /reset    mulai percakapan baru
  /quit     keluar`

func newChatCommand(configPath *string) *cobra.Command {
	var baseURL string
	var mute bool

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if baseURL != "" {
				cfg.Assistant.BaseURL = baseURL
			}

			var synth speech.Synthesizer
			if cfg.Speech.Enabled {
				es, err := speech.NewExecSynthesizer(cfg.Speech.Engine, logger)
				if err != nil {
					logger.Warn("Speech disabled", zap.Error(err))
				} else {
					synth = es
				}
			}
			notifier := speech.NewNotifier(synth, speech.Options{
				Locale: cfg.Speech.Locale,
				Rate:   cfg.Speech.Rate,
				Pitch:  cfg.Speech.Pitch,
				Volume: cfg.Speech.Volume,
			}, cfg.Speech.Enabled && !mute && synth != nil, logger)

			out := cmd.OutOrStdout()
			tr := newTranscript(out, render.New())

			ctrl := dialogue.New(
				client.New(cfg.Assistant.BaseURL, cfg.Assistant.Timeout, logger),
				notifier,
				classifier.New(classifier.DefaultVocabulary()),
				dialogue.Options{
					PlaceholderDelay: cfg.Widget.PlaceholderDelay,
					SpeechDelay:      cfg.Widget.SpeechDelay,
					QuickSendDelay:   cfg.Widget.QuickSendDelay,
					Logger:           logger,
					OnChange:         tr.Update,
				},
			)
			defer ctrl.Close()

			logger.Debug("Chat started",
				zap.String("session_id", ctrl.SessionID()),
				zap.String("base_url", cfg.Assistant.BaseURL),
			)

			fmt.Fprintln(out, chatHelp)
			tr.Update(ctrl.Snapshot())
			return runChat(cmd.InOrStdin(), out, ctrl, tr, notifier.Available())
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Assistant service base URL (overrides assistant.base_url)")
	cmd.Flags().BoolVar(&mute, "mute", false, "Start with speech turned off")

	return cmd
}

// runChat reads commands and messages until /quit or end of input.
// voiceAvailable is false when no speech engine could be started.
func runChat(in io.Reader, out io.Writer, ctrl *dialogue.Controller, tr *transcript, voiceAvailable bool) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case line == "/help":
			fmt.Fprintln(out, chatHelp)
		case line == "/reset":
			tr.Restart()
			ctrl.Reset()
		case line == "/voice":
			if !voiceAvailable {
				fmt.Fprintln(out, "Suara tidak tersedia: mesin suara tidak ditemukan.")
				continue
			}
			if ctrl.ToggleVoice() {
				fmt.Fprintln(out, "Suara dinyalakan.")
			} else {
				fmt.Fprintln(out, "Suara dimatikan.")
			}
		case strings.HasPrefix(line, "/"):
			n, err := strconv.Atoi(line[1:])
			suggestions := tr.Suggestions()
			if err != nil || n < 1 || n > len(suggestions) {
				fmt.Fprintln(out, chatHelp)
				continue
			}
			ctrl.QuickSend(suggestions[n-1])
			ctrl.Wait()
		default:
			ctrl.Send(line)
			ctrl.Wait()
		}
	}
}
