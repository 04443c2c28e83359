package core

import "fmt"

// CardLocation identifies where a card is defined.
type CardLocation struct {
	AnchorID     string
	RelativePath string
	Line         int
}

func (l CardLocation) String() string {
	return fmt.Sprintf("%s:%d", l.RelativePath, l.Line)
}
