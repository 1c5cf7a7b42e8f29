package rdb

import (
	"context"
	"fmt"
	"time"

	"github.com/hatlonely/beansql/log"
	"github.com/hatlonely/beansql/log/logger"
	"github.com/hatlonely/beansql/ref"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func init() {
	ref.MustRegisterT[ObservableTranslator](NewObservableTranslatorWithOptions)
}

type ObservableTranslatorOptions struct {
	// Translator 被包装的 Translator 配置
	Translator TranslatorOptions `cfg:"translator"`

	// Logger 记录每条语句的日志器配置
	Logger *ref.TypeOptions `cfg:"logger"`

	EnableMetrics bool `cfg:"enableMetrics" def:"true"`
	EnableLogging bool `cfg:"enableLogging" def:"true"`
	EnableTracing bool `cfg:"enableTracing" def:"false"`

	// Name 指标名前缀、日志 component 字段、tracer 名称
	Name string `cfg:"name" def:"beansql" validate:"required"`

	// Registerer 指标注册器，为空时使用 prometheus.DefaultRegisterer
	Registerer prometheus.Registerer `cfg:"-"`
}

// ObservableMetrics 语句生成的 prometheus 指标
type ObservableMetrics struct {
	statementCounter  *prometheus.CounterVec
	statementDuration *prometheus.HistogramVec
	statementColumns  *prometheus.HistogramVec
}

// NewObservableMetrics 创建并注册指标，同名指标已注册时复用已有的
func NewObservableMetrics(name string, registerer prometheus.Registerer) (*ObservableMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name + "_statements_total",
			Help: "Total number of generated SQL statements",
		},
		[]string{"kind", "status"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name + "_statement_duration_seconds",
			Help:    "Duration of SQL statement generation in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
		[]string{"kind"},
	)
	columns := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name + "_statement_columns",
			Help:    "Number of columns of the translated record type",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"kind"},
	)

	var err error
	if counter, err = register(registerer, counter); err != nil {
		return nil, err
	}
	if duration, err = register(registerer, duration); err != nil {
		return nil, err
	}
	if columns, err = register(registerer, columns); err != nil {
		return nil, err
	}

	return &ObservableMetrics{
		statementCounter:  counter,
		statementDuration: duration,
		statementColumns:  columns,
	}, nil
}

func register[C prometheus.Collector](registerer prometheus.Registerer, c C) (C, error) {
	if err := registerer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, errors.Wrap(err, "register metrics failed")
	}
	return c, nil
}

// ObservableTranslator 装饰器，为 Translator 添加指标、日志和追踪，生成的语句与 Translator 完全一致
type ObservableTranslator struct {
	translator *Translator

	ctx           context.Context
	logger        logger.Logger
	metrics       *ObservableMetrics
	tracer        trace.Tracer
	name          string
	enableMetrics bool
	enableLogging bool
	enableTracing bool
}

func NewObservableTranslatorWithOptions(options *ObservableTranslatorOptions) (*ObservableTranslator, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}
	name := options.Name
	if name == "" {
		name = "beansql"
	}

	translator, err := NewTranslatorWithOptions(&options.Translator)
	if err != nil {
		return nil, errors.WithMessage(err, "create translator failed")
	}

	obs := &ObservableTranslator{
		translator:    translator,
		ctx:           context.Background(),
		name:          name,
		enableMetrics: options.EnableMetrics,
		enableLogging: options.EnableLogging,
		enableTracing: options.EnableTracing,
	}

	if options.EnableLogging {
		l, err := log.NewLoggerWithOptions(options.Logger)
		if err != nil {
			return nil, errors.WithMessage(err, "create logger failed")
		}
		obs.logger = l.WithGroup("observableTranslator")
	}

	if options.EnableMetrics {
		if obs.metrics, err = NewObservableMetrics(name, options.Registerer); err != nil {
			return nil, err
		}
	}

	if options.EnableTracing {
		obs.tracer = otel.Tracer(fmt.Sprintf("translator.%s", name))
	}

	return obs, nil
}

// WithContext 返回使用 ctx 作为 span 父上下文和日志上下文的副本
func (obs *ObservableTranslator) WithContext(ctx context.Context) *ObservableTranslator {
	clone := *obs
	clone.ctx = ctx
	return &clone
}

func (obs *ObservableTranslator) Generate(kind StatementKind, v any) (string, error) {
	start := time.Now()
	ctx := obs.ctx

	model := obs.translator.Model(v)

	var span trace.Span
	if obs.enableTracing && obs.tracer != nil {
		ctx, span = obs.tracer.Start(ctx, fmt.Sprintf("translator.%s", kind),
			trace.WithAttributes(
				attribute.String("component", obs.name),
				attribute.String("kind", string(kind)),
				attribute.String("table", model.Table),
			),
		)
		defer span.End()
	}

	sql, err := obs.translator.Generate(kind, model)
	duration := time.Since(start)

	if span != nil {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.RecordError(err)
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}

	if obs.enableMetrics && obs.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		obs.metrics.statementCounter.WithLabelValues(string(kind), status).Inc()
		obs.metrics.statementDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())
		obs.metrics.statementColumns.WithLabelValues(string(kind)).Observe(float64(len(model.Fields)))
	}

	if obs.enableLogging && obs.logger != nil {
		if err != nil {
			obs.logger.ErrorContext(ctx, "translate failed",
				"component", obs.name,
				"kind", string(kind),
				"table", model.Table,
				"error", err.Error(),
			)
		} else {
			obs.logger.InfoContext(ctx, "translate completed",
				"component", obs.name,
				"kind", string(kind),
				"table", model.Table,
				"duration_us", duration.Microseconds(),
			)
		}
	}

	return sql, err
}

func (obs *ObservableTranslator) CreateTable(v any) (string, error) {
	return obs.Generate(StatementCreate, v)
}

func (obs *ObservableTranslator) InsertTable(v any) string {
	sql, _ := obs.Generate(StatementInsert, v)
	return sql
}

func (obs *ObservableTranslator) DeleteTable(v any) string {
	sql, _ := obs.Generate(StatementDelete, v)
	return sql
}

func (obs *ObservableTranslator) SelectTable(v any) string {
	sql, _ := obs.Generate(StatementSelect, v)
	return sql
}

func (obs *ObservableTranslator) UpdateTable(v any) string {
	sql, _ := obs.Generate(StatementUpdate, v)
	return sql
}

func (obs *ObservableTranslator) DeleteByIDTable(v any) string {
	sql, _ := obs.Generate(StatementDeleteByID, v)
	return sql
}

func (obs *ObservableTranslator) SelectByIDTable(v any) string {
	sql, _ := obs.Generate(StatementSelectByID, v)
	return sql
}

func (obs *ObservableTranslator) UpdateByIDTable(v any) string {
	sql, _ := obs.Generate(StatementUpdateByID, v)
	return sql
}

func (obs *ObservableTranslator) SelectAllTable(v any) string {
	sql, _ := obs.Generate(StatementSelectAll, v)
	return sql
}

func (obs *ObservableTranslator) DropTable(v any) string {
	sql, _ := obs.Generate(StatementDrop, v)
	return sql
}
