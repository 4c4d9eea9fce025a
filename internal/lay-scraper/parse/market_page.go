package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/vbetlab/valuebet-pipeline/pkg/contracts/events"
)

// Erros de página malformada. Qualquer um deles aborta o ciclo inteiro:
// nunca sai registro parcial de uma página quebrada.
var (
	ErrNoMarket     = errors.New("market container not found")
	ErrNoMarketID   = errors.New("market id attribute missing")
	ErrNoSelections = errors.New("no runner lines found")
	ErrMissingField = errors.New("required field missing")
)

// Selectors agrupa as queries estruturais da página de mercado.
// Se o HTML da exchange mudar, só esse bloco precisa acompanhar.
type Selectors struct {
	Market     string // container com data-market-id
	MarketName string
	EventName  string
	RunnerLine string
	RunnerName string
	LayPrice   string
	LaySize    string
}

func DefaultSelectors() Selectors {
	return Selectors{
		Market:     `div.market-view`,
		MarketName: `h1.market-view__name`,
		EventName:  `div.market-view__event`,
		RunnerLine: `tr.runner-line`,
		RunnerName: `td.runner-line__name`,
		LayPrice:   `td.runner-line__lay span.price`,
		LaySize:    `td.runner-line__lay span.size`,
	}
}

// PageParser extrai registros de lay odds de uma página de mercado.
// O parse é determinístico: o mesmo markup produz sempre os mesmos campos
// (só o RecordID, um uuid, varia entre execuções).
type PageParser struct {
	sel Selectors
}

func NewPageParser(sel Selectors) *PageParser {
	return &PageParser{sel: sel}
}

// Parse roda as queries sobre o markup e monta um registro por runner.
// Falha com erro tipado se a estrutura esperada não estiver na página.
func (p *PageParser) Parse(markup string, source string, now time.Time) ([]events.LayOddsRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	market := doc.Find(p.sel.Market).First()
	if market.Length() == 0 {
		return nil, ErrNoMarket
	}

	marketID, ok := market.Attr("data-market-id")
	if !ok || strings.TrimSpace(marketID) == "" {
		return nil, ErrNoMarketID
	}
	marketID = strings.TrimSpace(marketID)

	marketName := strings.TrimSpace(market.Find(p.sel.MarketName).First().Text())
	if marketName == "" {
		return nil, fmt.Errorf("%w: market name", ErrMissingField)
	}

	eventName := strings.TrimSpace(market.Find(p.sel.EventName).First().Text())
	if eventName == "" {
		return nil, fmt.Errorf("%w: event name", ErrMissingField)
	}

	lines := market.Find(p.sel.RunnerLine)
	if lines.Length() == 0 {
		return nil, ErrNoSelections
	}

	var records []events.LayOddsRecord
	var parseErr error

	lines.EachWithBreak(func(i int, s *goquery.Selection) bool {
		selection := strings.TrimSpace(s.Find(p.sel.RunnerName).First().Text())
		if selection == "" {
			parseErr = fmt.Errorf("%w: selection name (runner %d)", ErrMissingField, i)
			return false
		}

		priceText := strings.TrimSpace(s.Find(p.sel.LayPrice).First().Text())
		if priceText == "" {
			parseErr = fmt.Errorf("%w: lay price for %q", ErrMissingField, selection)
			return false
		}
		layOdds, err := strconv.ParseFloat(priceText, 64)
		if err != nil {
			parseErr = fmt.Errorf("lay price for %q: %w", selection, err)
			return false
		}

		// O volume vem com símbolo de moeda e separador de milhar ("£1,540")
		var laySize float64
		if sizeText := strings.TrimSpace(s.Find(p.sel.LaySize).First().Text()); sizeText != "" {
			laySize, err = parseSize(sizeText)
			if err != nil {
				parseErr = fmt.Errorf("lay size for %q: %w", selection, err)
				return false
			}
		}

		records = append(records, events.LayOddsRecord{
			RecordID:   uuid.NewString(),
			MarketID:   marketID,
			MarketName: marketName,
			EventName:  eventName,
			Selection:  selection,
			LayOdds:    layOdds,
			LaySize:    laySize,
			ScrapedAt:  now,
			Source:     source,
		})
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}

	return records, nil
}

func parseSize(text string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.':
			return r
		case r == ',':
			return -1 // separador de milhar
		default:
			return -1
		}
	}, text)
	if cleaned == "" {
		return 0, fmt.Errorf("no numeric value in %q", text)
	}
	return strconv.ParseFloat(cleaned, 64)
}
