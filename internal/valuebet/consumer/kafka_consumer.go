package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/evaluator"
	"github.com/vbetlab/valuebet-pipeline/internal/valuebet/repo"
	"github.com/vbetlab/valuebet-pipeline/pkg/contracts/events"
)

// Worker consome apostas submetidas, avalia contra os lay odds correntes e
// grava o resultado. Avaliações VALUE/2PC são publicadas pro tópico de achados.
type Worker struct {
	Log  *zap.Logger
	Read *kafka.Reader
	Eval *evaluator.Evaluator
	Repo *repo.Postgres

	// Publica ValuebetFound; nil desliga a publicação
	Found *kafka.Writer
	// Mensagens indecodificáveis vão pra DLQ; nil descarta
	DLQ *kafka.Writer

	OnConsumed  func()       // métricas (counter++)
	OnEvaluated func(string) // métricas por status final
	OnError     func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e avaliação.
func (w *Worker) Run(ctx context.Context) error {
	for {
		m, err := w.Read.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.Log.Warn("kafka read failed", zap.Error(err))
			if w.OnError != nil {
				w.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if w.OnConsumed != nil {
			w.OnConsumed()
		}

		var bet events.BetSubmitted
		if err := json.Unmarshal(m.Value, &bet); err != nil || bet.BetID == "" {
			w.Log.Warn("invalid message", zap.Error(err))
			if w.OnError != nil {
				w.OnError("decode")
			}
			w.deadLetter(ctx, m)
			continue
		}

		ev, err := w.Eval.Evaluate(ctx, bet)
		if err != nil {
			w.Log.Error("evaluation failed", zap.String("betId", bet.BetID), zap.Error(err))
			if w.OnError != nil {
				w.OnError("evaluate")
			}
			continue
		}

		if err := w.Repo.UpdateEvaluation(ctx, bet.BetID, ev.Status, ev.LayProduct, ev.Line); err != nil {
			w.Log.Error("persist evaluation failed", zap.String("betId", bet.BetID), zap.Error(err))
			if w.OnError != nil {
				w.OnError("db_update")
			}
			continue
		}
		if w.OnEvaluated != nil {
			w.OnEvaluated(ev.Status)
		}

		w.Log.Info("bet evaluated",
			zap.String("betId", bet.BetID),
			zap.String("status", ev.Status),
			zap.Float64("layProduct", ev.LayProduct),
		)

		if ev.Status == evaluator.StatusValue || ev.Status == evaluator.Status2PC {
			w.publishFound(ctx, bet, ev)
		}
	}
}

func (w *Worker) publishFound(ctx context.Context, bet events.BetSubmitted, ev evaluator.Evaluation) {
	if w.Found == nil {
		return
	}
	found := events.ValuebetFound{
		BetID:       bet.BetID,
		Bookmaker:   bet.Bookmaker,
		Sport:       bet.Sport,
		Bet:         bet.Bet,
		Odds:        bet.Odds,
		LayProduct:  ev.LayProduct,
		Status:      ev.Status,
		Line:        ev.Line,
		EvaluatedAt: time.Now().UTC(),
	}
	b, err := json.Marshal(found)
	if err != nil {
		w.Log.Warn("marshal valuebet found failed", zap.Error(err))
		return
	}
	if err := w.Found.WriteMessages(ctx, kafka.Message{Key: []byte(bet.BetID), Value: b}); err != nil {
		w.Log.Warn("publish valuebet found failed", zap.Error(err))
		if w.OnError != nil {
			w.OnError("publish")
		}
	}
}

func (w *Worker) deadLetter(ctx context.Context, m kafka.Message) {
	if w.DLQ == nil {
		return
	}
	if err := w.DLQ.WriteMessages(ctx, kafka.Message{Key: m.Key, Value: m.Value}); err != nil {
		w.Log.Warn("dlq publish failed", zap.Error(err))
	}
}
