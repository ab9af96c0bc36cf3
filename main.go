package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"

	"book-recommender/src/api"
	"book-recommender/src/application"
	"book-recommender/src/config"
	"book-recommender/src/domain"
	"book-recommender/src/infrastructure"
	"book-recommender/src/infrastructure/similarity"
	"book-recommender/src/logging"
)

// options параметры командной строки
type options struct {
	configPath string
	dbPath     string
	simPath    string
	addr       string
	action     string
	format     string
	request    domain.Request
}

func main() {
	// Определяем флаги командной строки
	var opts options
	flag.StringVar(&opts.configPath, "config", "config/config.yaml", "Путь к файлу конфигурации")
	flag.StringVar(&opts.dbPath, "db", "", "Путь к базе каталога (перекрывает конфигурацию)")
	flag.StringVar(&opts.simPath, "similarity", "", "Путь к архиву или .npy файлу матрицы сходства")
	flag.StringVar(&opts.addr, "addr", "", "Адрес HTTP сервера (для действия serve)")
	flag.StringVar(&opts.action, "action", "serve", "Действие: serve, recommend, info")
	flag.StringVar(&opts.format, "format", "text", "Формат вывода recommend: text или json")
	flag.StringVar(&opts.request.Title, "book", "", "Название книги (для действия recommend)")
	flag.StringVar(&opts.request.Author, "author", "", "Автор (для действия recommend)")
	flag.StringVar(&opts.request.Genre, "genre", "", "Жанр (для действия recommend)")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		stop()
		logging.Fatal().Err(err).Str("action", opts.action).Msg("ошибка выполнения")
	}
}

// run собирает зависимости и выполняет действие
func run(ctx context.Context, opts options, out io.Writer) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.dbPath != "" {
		cfg.Database.Path = opts.dbPath
	}
	if opts.simPath != "" {
		cfg.Similarity.Path = opts.simPath
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}

	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// Создаем репозиторий
	repo, err := infrastructure.NewSQLiteCatalogRepository(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("ошибка инициализации каталога: %w", err)
	}
	defer repo.Close()

	table, err := loadSimilarity(cfg)
	if err != nil {
		return err
	}

	metrics := application.NewMetrics()
	rec, err := application.NewRecommender(repo, table, cfg.Similarity.CacheSize, metrics)
	if err != nil {
		return err
	}

	// Создаем сервис
	service := application.NewService(rec, metrics)

	switch opts.action {
	case "recommend":
		return handleRecommend(ctx, out, service, opts.request, opts.format)
	case "info":
		return handleInfo(ctx, out, service, table)
	case "serve":
		return serve(ctx, cfg.Server.Addr, api.RouterConfig{
			CORSOrigins: cfg.Server.CORSOrigins,
			RateLimit:   cfg.Server.RateLimit,
		}, service, metrics)
	default:
		return fmt.Errorf("неизвестное действие %q: ожидается serve, recommend или info", opts.action)
	}
}

// loadSimilarity загружает матрицу сходства. Без нее сервис работает в деградированном режиме,
// если только конфигурация не требует матрицу явно.
func loadSimilarity(cfg config.Config) (domain.SimilarityTable, error) {
	if cfg.Similarity.Path == "" {
		logging.Warn().Msg("путь к матрице сходства не задан, похожие книги недоступны")
		return nil, nil
	}

	table, err := similarity.Load(cfg.Similarity.Path, cfg.Similarity.Entry)
	if err != nil {
		if cfg.Similarity.Required {
			return nil, fmt.Errorf("ошибка загрузки матрицы сходства: %w", err)
		}
		logging.Warn().Err(err).Str("path", cfg.Similarity.Path).Msg("матрица сходства не загружена, похожие книги недоступны")
		return nil, nil
	}

	logging.Info().
		Str("path", cfg.Similarity.Path).
		Int("size", table.Size()).
		Msg("матрица сходства загружена")
	return table, nil
}

// handleRecommend выполняет один запрос и печатает результат
func handleRecommend(ctx context.Context, out io.Writer, service application.RecommendationService, req domain.Request, format string) error {
	resp, err := service.Recommend(ctx, req)
	if err != nil {
		return fmt.Errorf("ошибка подбора рекомендаций: %w", err)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "text", "":
		return renderText(out, resp)
	default:
		return fmt.Errorf("неизвестный формат вывода %q", format)
	}
}

// renderText печатает предупреждения и секции: заголовок и строки сетки
func renderText(out io.Writer, resp *domain.Response) error {
	var b strings.Builder
	for _, w := range resp.Warnings {
		fmt.Fprintf(&b, "! %s\n", w)
	}
	for i, section := range resp.Sections {
		if i > 0 || len(resp.Warnings) > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "== %s ==\n", section.Label)
		for _, row := range section.Grid {
			titles := make([]string, len(row))
			for j, c := range row {
				titles[j] = c.Title
			}
			fmt.Fprintf(&b, "  %s\n", strings.Join(titles, " | "))
		}
	}
	_, err := io.WriteString(out, b.String())
	return err
}

// handleInfo печатает размер каталога и размеры матрицы сходства
func handleInfo(ctx context.Context, out io.Writer, service application.RecommendationService, table domain.SimilarityTable) error {
	status, err := service.Status(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения состояния: %w", err)
	}

	fmt.Fprintf(out, "Catalog: %d books\n", status.Books)
	if table == nil {
		fmt.Fprintln(out, "Similarity: unavailable")
		return nil
	}
	fmt.Fprintf(out, "Similarity: %dx%d\n", table.Size(), table.Size())
	return nil
}

// serve запускает HTTP сервер и останавливает его по отмене контекста
func serve(ctx context.Context, addr string, routes api.RouterConfig, service application.RecommendationService, metrics *application.Metrics) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(api.NewHandler(service), metrics.Registry, routes),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logging.Info().Str("addr", addr).Msg("HTTP сервер запущен")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ошибка HTTP сервера: %w", err)
	case <-ctx.Done():
	}

	logging.Info().Msg("остановка HTTP сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки HTTP сервера: %w", err)
	}
	return nil
}
