package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"google.golang.org/genai"

	"materiku_backend/internals/configs"
)

// Flashcard satu kartu tanya-jawab hasil generasi.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// QuizQuestion satu soal pilihan ganda.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Explanation string   `json:"explanation"`
}

// Generator membungkus klien Gemini untuk semua kebutuhan generasi konten.
type Generator struct {
	client *genai.Client
	model  string
}

func NewGenerator(ctx context.Context, cfg configs.GeminiConfig) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("generate: GEMINI_API_KEY belum diset")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("generate: init client: %w", err)
	}
	return &Generator{client: client, model: cfg.Model}, nil
}

func (g *Generator) generateText(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("generate: respons kosong dari model")
	}
	return text, nil
}

func (g *Generator) generateJSON(ctx context.Context, prompt string, out interface{}) error {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.4),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	raw := strings.TrimSpace(result.Text())
	if err := sonic.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("generate: parse respons JSON: %w", err)
	}
	return nil
}

// GenerateVideoScript naskah video pembelajaran dari ringkasan materi.
func (g *Generator) GenerateVideoScript(ctx context.Context, subject, title, summary string) (string, error) {
	prompt := fmt.Sprintf(`Kamu adalah penulis naskah video pembelajaran untuk siswa SMA di Indonesia.
Buat naskah video berdurasi 5-7 menit untuk materi berikut.

Mata pelajaran: %s
Judul materi: %s
Ringkasan materi:
%s

Struktur naskah: pembuka yang menarik, penjelasan inti bertahap dengan analogi sehari-hari, dan penutup berisi rangkuman.
Gunakan bahasa Indonesia yang santai tapi tetap edukatif.`, subject, title, summary)
	return g.generateText(ctx, prompt)
}

// GeneratePodcastScript naskah podcast dua pembicara (host dan guru).
func (g *Generator) GeneratePodcastScript(ctx context.Context, subject, title, summary string) (string, error) {
	prompt := fmt.Sprintf(`Buat naskah podcast pembelajaran dalam bahasa Indonesia dengan dua pembicara: HOST dan GURU.
Format tiap baris: "HOST:" atau "GURU:" diikuti dialog.

Mata pelajaran: %s
Judul materi: %s
Ringkasan materi:
%s

Podcast berdurasi sekitar 10 menit, dialognya mengalir natural, HOST mewakili rasa ingin tahu siswa.`, subject, title, summary)
	return g.generateText(ctx, prompt)
}

// GenerateFlashcards kartu hafalan tanya-jawab.
func (g *Generator) GenerateFlashcards(ctx context.Context, subject, title, summary string, count int) ([]Flashcard, error) {
	if count <= 0 {
		count = 10
	}
	prompt := fmt.Sprintf(`Buat %d flashcard untuk menghafal konsep penting dari materi berikut.
Balas HANYA dengan array JSON berformat [{"front":"pertanyaan","back":"jawaban singkat"}].

Mata pelajaran: %s
Judul materi: %s
Ringkasan materi:
%s`, count, subject, title, summary)

	var cards []Flashcard
	if err := g.generateJSON(ctx, prompt, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// GenerateSQ3RReport laporan belajar metode SQ3R dalam HTML sederhana.
func (g *Generator) GenerateSQ3RReport(ctx context.Context, subject, title, summary string) (string, error) {
	prompt := fmt.Sprintf(`Buat laporan belajar metode SQ3R (Survey, Question, Read, Recite, Review) untuk materi berikut.
Keluarkan sebagai HTML sederhana (heading h2 per tahap, paragraf dan list), tanpa tag html/head/body.

Mata pelajaran: %s
Judul materi: %s
Ringkasan materi:
%s`, subject, title, summary)
	return g.generateText(ctx, prompt)
}

// GenerateQuizQuestions soal pilihan ganda untuk Google Form.
func (g *Generator) GenerateQuizQuestions(ctx context.Context, subject, title, summary string, count int) ([]QuizQuestion, error) {
	if count <= 0 {
		count = 5
	}
	prompt := fmt.Sprintf(`Buat %d soal pilihan ganda (4 opsi) dari materi berikut.
Balas HANYA dengan array JSON berformat:
[{"question":"...","options":["a","b","c","d"],"answer_index":0,"explanation":"..."}]

Mata pelajaran: %s
Judul materi: %s
Ringkasan materi:
%s`, count, subject, title, summary)

	var questions []QuizQuestion
	if err := g.generateJSON(ctx, prompt, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// AnalyzeQuizResults analisis naratif hasil kuis satu kelas untuk guru.
func (g *Generator) AnalyzeQuizResults(ctx context.Context, title string, resultsCSV string) (string, error) {
	prompt := fmt.Sprintf(`Berikut hasil kuis materi "%s" dalam format CSV (baris pertama header).

%s

Buat analisis singkat dalam bahasa Indonesia untuk guru: rata-rata nilai, soal yang paling banyak salah,
konsep yang perlu diulang di kelas, dan 2-3 saran tindak lanjut. Maksimal 300 kata.`, title, resultsCSV)
	return g.generateText(ctx, prompt)
}
