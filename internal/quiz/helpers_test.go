package quiz

import "encoding/json"

func jsonCopy(s *Session) ([]byte, error) {
	return json.Marshal(s)
}

func jsonSession(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
