package internal

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// The single JSON boundary of the service. Failures are typed so callers can
// tell an encode problem from a decode problem without string matching.

func EncodeJson(value any) ([]byte, error) {
	data, err := sonic.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJsonEncode, err)
	}
	return data, nil
}

func DecodeJson(data []byte, target any) error {
	if err := sonic.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrJsonDecode, err)
	}
	return nil
}
