package service

import (
	"fmt"

	"github.com/dangerclosesec/crmboard/internal/domain"
)

var (
	ErrInvalidPaging = fmt.Errorf("invalid paging: %w", domain.ErrInvalidInput)
	ErrInvalidRange  = fmt.Errorf("range end precedes start: %w", domain.ErrInvalidInput)
)
