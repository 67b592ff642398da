package room

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Credentials — общие комнатные данные турнира: выдаются каждому участнику,
// генерируются ровно один раз за жизнь турнира.
type Credentials struct {
	RoomID   string
	Password string
}

// Generator выдаёт комнатные данные. Источник случайности инжектируется,
// чтобы тесты могли проверять детерминированную генерацию.
type Generator interface {
	Generate() (Credentials, error)
}

type cryptoGenerator struct {
	source io.Reader
}

// NewGenerator возвращает генератор на crypto/rand.
func NewGenerator() Generator {
	return &cryptoGenerator{source: rand.Reader}
}

// NewGeneratorWithSource позволяет подменить источник случайности (тесты).
func NewGeneratorWithSource(source io.Reader) Generator {
	return &cryptoGenerator{source: source}
}

// Формат совместим с исходной схемой: RM + 6 цифр, PW + 4 цифры.
// Значения не выводимы из ID турнира или времени вызова.
func (g *cryptoGenerator) Generate() (Credentials, error) {
	roomNum, err := g.randomInRange(100_000, 999_999)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to generate room id: %w", err)
	}
	passNum, err := g.randomInRange(1_000, 9_999)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to generate room password: %w", err)
	}
	return Credentials{
		RoomID:   fmt.Sprintf("RM%d", roomNum),
		Password: fmt.Sprintf("PW%d", passNum),
	}, nil
}

func (g *cryptoGenerator) randomInRange(min, max int64) (int64, error) {
	n, err := rand.Int(g.source, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
