package main

import (
	"context"
	"os"

	"github.com/hatlonely/beansql/cfg"
	"github.com/hatlonely/beansql/cfg/validator"
	"github.com/hatlonely/beansql/log"
	"github.com/hatlonely/beansql/log/logger"
	"github.com/hatlonely/beansql/rdb"
	"github.com/hatlonely/beansql/ref"
	"github.com/hatlonely/beansql/schema"
	"github.com/hatlonely/beansql/serializer"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type Options struct {
	// Schema 表结构描述文件，yaml/toml/json/ini
	Schema string `cfg:"schema" validate:"required"`
	// Statements 要生成的语句类型，为空时生成全部十种
	Statements []string `cfg:"statements"`
	Format     string   `cfg:"format" def:"text" validate:"oneof=text sql json yaml yml toml msgpack bson protobuf pb"`
	// Output 输出文件，"-" 为标准输出
	Output  string           `cfg:"output" def:"-"`
	Watch   bool             `cfg:"watch"`
	Logger  *ref.TypeOptions `cfg:"logger"`
	Metrics bool             `cfg:"metrics"`
}

// LoadOptions 从配置文件加载选项，override 在默认值和校验之前执行，用于合并命令行参数
func LoadOptions(path string, override func(options *Options)) (*Options, error) {
	options := &Options{}
	if path != "" {
		c, err := cfg.NewConfig(path)
		if err != nil {
			return nil, errors.WithMessagef(err, "load config %s failed", path)
		}
		defer c.Close()

		if err := c.Unmarshal(options); err != nil {
			return nil, errors.WithMessage(err, "parse options failed")
		}
	}
	if override != nil {
		override(options)
	}
	if err := cfg.SetDefaults(options); err != nil {
		return nil, errors.WithMessage(err, "set defaults failed")
	}
	if err := validator.ValidateStruct(options); err != nil {
		return nil, err
	}
	return options, nil
}

type App struct {
	options    *Options
	kinds      []rdb.StatementKind
	generator  rdb.Generator
	serializer serializer.Serializer
	logger     logger.Logger
	registry   *prometheus.Registry
}

func NewAppWithOptions(options *Options) (*App, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}

	kinds, err := rdb.ParseStatementKinds(options.Statements)
	if err != nil {
		return nil, err
	}

	s, err := serializer.NewSerializer(options.Format)
	if err != nil {
		return nil, err
	}

	l, err := log.NewLoggerWithOptions(options.Logger)
	if err != nil {
		return nil, errors.WithMessage(err, "create logger failed")
	}

	app := &App{
		options:    options,
		kinds:      kinds,
		serializer: s,
		logger:     l,
	}

	if options.Metrics {
		app.registry = prometheus.NewRegistry()
		app.generator, err = rdb.NewObservableTranslatorWithOptions(&rdb.ObservableTranslatorOptions{
			Translator:    rdb.TranslatorOptions{Logger: options.Logger},
			Logger:        options.Logger,
			EnableMetrics: true,
			EnableLogging: true,
			Name:          "beansql",
			Registerer:    app.registry,
		})
	} else {
		app.generator, err = rdb.NewTranslatorWithOptions(&rdb.TranslatorOptions{Logger: options.Logger})
	}
	if err != nil {
		return nil, errors.WithMessage(err, "create translator failed")
	}

	return app, nil
}

// Generate 按文件中表的顺序和请求的语句顺序生成语句
func (a *App) Generate(file *schema.File) (*serializer.Bundle, error) {
	bundle := &serializer.Bundle{}
	for _, model := range file.Models() {
		t := serializer.TableStatements{Table: model.Table}
		for _, kind := range a.kinds {
			sql, err := a.generator.Generate(kind, model)
			if err != nil {
				return nil, errors.WithMessagef(err, "generate %s for %s failed", kind, model.Table)
			}
			t.Statements = append(t.Statements, serializer.Statement{Kind: string(kind), SQL: sql})
		}
		bundle.Tables = append(bundle.Tables, t)
	}
	return bundle, nil
}

// Render 生成并序列化
func (a *App) Render(file *schema.File) ([]byte, error) {
	bundle, err := a.Generate(file)
	if err != nil {
		return nil, err
	}
	buf, err := a.serializer.Serialize(bundle)
	if err != nil {
		return nil, errors.WithMessagef(err, "serialize %s failed", a.options.Format)
	}
	return buf, nil
}

func (a *App) write(buf []byte) error {
	if a.options.Output == "" || a.options.Output == "-" {
		_, err := os.Stdout.Write(buf)
		return errors.Wrap(err, "write stdout failed")
	}
	return errors.Wrapf(os.WriteFile(a.options.Output, buf, 0644), "write %s failed", a.options.Output)
}

func (a *App) regenerate(c *cfg.Config) error {
	file, err := schema.FromConfig(c)
	if err != nil {
		return err
	}
	buf, err := a.Render(file)
	if err != nil {
		return err
	}
	return a.write(buf)
}

// Run 生成一次，开启 Watch 时在 schema 文件变化后重新生成，直到 ctx 结束
func (a *App) Run(ctx context.Context) error {
	c, err := cfg.NewConfig(a.options.Schema)
	if err != nil {
		return errors.WithMessagef(err, "load schema %s failed", a.options.Schema)
	}
	defer c.Close()
	defer a.reportMetrics()

	if err := a.regenerate(c); err != nil {
		return err
	}
	if !a.options.Watch {
		return nil
	}

	c.OnChange(func(c *cfg.Config) error {
		if err := a.regenerate(c); err != nil {
			return err
		}
		a.logger.Info("schema regenerated", "schema", a.options.Schema)
		return nil
	})
	if err := c.Watch(); err != nil {
		return errors.WithMessage(err, "watch schema failed")
	}
	a.logger.Info("watching schema", "schema", a.options.Schema)

	<-ctx.Done()
	return nil
}

func (a *App) reportMetrics() {
	if a.registry == nil {
		return
	}
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn("gather metrics failed", "error", err.Error())
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() == nil {
				continue
			}
			attrs := []any{"metric", mf.GetName(), "value", m.GetCounter().GetValue()}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			a.logger.Info("metrics", attrs...)
		}
	}
}
