// Command anket fills the design-discovery survey from the terminal and
// posts it to a running submission endpoint. It drives the same wizard
// state machine the embedded widget uses.
package main

import (
	"bufio"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alper-collab/tasarim-anketi/internal/client"
	"github.com/alper-collab/tasarim-anketi/internal/survey"
	"github.com/alper-collab/tasarim-anketi/internal/wizard"
)

func main() {
	var (
		endpoint string
		email    string
		timeout  time.Duration
	)

	rootCmd := &cobra.Command{
		Use:          "anket",
		Short:        "Tasarım keşif anketini terminalden doldurup gönderir",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			submitter := client.New(endpoint, client.WithTimeout(timeout))
			w := wizard.New(survey.DefaultQuestions(), submitter, wizard.WithRespondentEmail(email))
			return run(cmd, w)
		},
	}

	rootCmd.Flags().StringVar(&endpoint, "endpoint", "https://tasarim-anketi.vercel.app/api/send-email", "gönderim uç noktası")
	rootCmd.Flags().StringVar(&email, "email", "", "önceden bilinen e-posta adresi")
	rootCmd.Flags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "gönderim zaman aşımı")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, w *wizard.Wizard) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())

	fmt.Fprintln(out, "Tasarım Yolculuğunuz Başlıyor")
	fmt.Fprintln(out, "Başlamak için Enter'a basın.")
	scanner.Scan()
	w.Start()

	for w.View() == wizard.ViewInProgress {
		q := w.Current()
		current, total := w.Step()
		fmt.Fprintf(out, "\nAdım %d / %d\n", current, total)
		star := ""
		if q.Required {
			star = " *"
		}
		fmt.Fprintf(out, "%s%s\n", q.Text, star)

		askQuestion(out, scanner, q, w.Answers())

		if !w.CanAdvance() {
			fmt.Fprintln(out, "Bu soru zorunlu; lütfen geçerli bir cevap girin.")
			continue
		}
		w.Advance(cmd.Context())
		if msg := w.LastError(); msg != "" {
			fmt.Fprintln(out, msg)
			fmt.Fprintln(out, "Tekrar denemek için Enter'a basın.")
			scanner.Scan()
		}
	}

	fmt.Fprintln(out, "\nTeşekkür ederiz!")
	fmt.Fprintln(out, "Tasarım yolculuğunuza bizimle başladığınız için heyecanlıyız. En kısa sürede sizinle iletişime geçeceğiz.")
	return nil
}

func askQuestion(out io.Writer, scanner *bufio.Scanner, q survey.Question, answers *survey.AnswerSet) {
	switch q.Type {
	case survey.TypeEmail, survey.TypeText, survey.TypeTextarea:
		if existing := answers.Text(q.ID); existing != "" {
			fmt.Fprintf(out, "Mevcut cevap: %s (boş bırakmak koruyacaktır)\n", existing)
		}
		fmt.Fprint(out, "> ")
		if scanner.Scan() {
			if text := scanner.Text(); text != "" || answers.Text(q.ID) == "" {
				answers.SetText(q.ID, text)
			}
		}

	case survey.TypeRadio:
		printOptions(out, q.Options)
		fmt.Fprint(out, "Seçim (numara): ")
		if scanner.Scan() {
			if idx, err := strconv.Atoi(strings.TrimSpace(scanner.Text())); err == nil && idx >= 1 && idx <= len(q.Options) {
				answers.SetChoice(q.ID, q.Options[idx-1])
				if q.HasOtherSpecify && q.Options[idx-1] == survey.OtherOption {
					fmt.Fprint(out, "Lütfen belirtin: ")
					if scanner.Scan() {
						answers.SetChoiceOther(q.ID, scanner.Text())
					}
				}
			}
		}

	case survey.TypeCheckbox:
		printOptions(out, q.Options)
		fmt.Fprint(out, "Seçimler (virgülle ayrılmış numaralar, boş = atla): ")
		if scanner.Scan() {
			needsOther := false
			for _, part := range strings.Split(scanner.Text(), ",") {
				idx, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil || idx < 1 || idx > len(q.Options) {
					continue
				}
				answers.ToggleOption(q.ID, q.Options[idx-1])
				if q.HasOtherSpecify && q.Options[idx-1] == survey.OtherOption {
					needsOther = true
				}
			}
			if needsOther {
				fmt.Fprint(out, "Lütfen belirtin: ")
				if scanner.Scan() {
					answers.SetMultiOther(q.ID, scanner.Text())
				}
			}
		}

	case survey.TypeFile:
		fmt.Fprint(out, "Dosya yolları (virgülle ayrılmış, boş = atla): ")
		if scanner.Scan() {
			for _, part := range strings.Split(scanner.Text(), ",") {
				path := strings.TrimSpace(part)
				if path == "" {
					continue
				}
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(out, "%s okunamadı: %v\n", path, err)
					continue
				}
				answers.AddFile(q.ID, survey.UploadedFile{
					Name:        filepath.Base(path),
					ContentType: detectContentType(path, data),
					Data:        data,
				}, q.Multiple)
			}
		}
	}
}

func printOptions(out io.Writer, options []string) {
	for i, opt := range options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
}

func detectContentType(path string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}
