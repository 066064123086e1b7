package protocol

import "time"

// Observer receives one callback per packet a Stream reads or writes.
// wireBytes counts the full frame including its length prefix, or as
// much of it as was transferred before err.
type Observer interface {
	ObserveRead(start time.Time, pkt Packet, wireBytes int, compressed bool, err error)
	ObserveWrite(start time.Time, id int32, wireBytes int, compressed bool, err error)
}

type multiObserver []Observer

// MultiObserver returns an Observer that forwards to each non-nil
// observer in order.
func MultiObserver(observers ...Observer) Observer {
	var m multiObserver
	for _, o := range observers {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

func (m multiObserver) ObserveRead(start time.Time, pkt Packet, wireBytes int, compressed bool, err error) {
	for _, o := range m {
		o.ObserveRead(start, pkt, wireBytes, compressed, err)
	}
}

func (m multiObserver) ObserveWrite(start time.Time, id int32, wireBytes int, compressed bool, err error) {
	for _, o := range m {
		o.ObserveWrite(start, id, wireBytes, compressed, err)
	}
}
