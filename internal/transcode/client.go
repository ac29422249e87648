package transcode

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
)

// SendTask manda una tarea a un nodo de assets y espera su resultado.
// Protocolo: un JSON por lado sobre la misma conexión TCP.
func SendTask(ctx context.Context, addr string, task *PrepareTask) (*PrepareResult, error) {
	d := net.Dialer{}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	enc := json.NewEncoder(conn)
	if err := enc.Encode(task); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bufio.NewReader(conn))
	var resp PrepareResult
	if err := dec.Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Dispatch intenta los nodos en orden y devuelve el primer resultado.
// Si todos fallan devuelve el primer error de conexión.
func Dispatch(ctx context.Context, nodeAddrs []string, task *PrepareTask) (*PrepareResult, error) {
	if len(nodeAddrs) == 0 {
		return nil, fmt.Errorf("no hay nodos de assets configurados (ASSET_NODE_ADDRS vacío)")
	}

	var firstErr error
	for _, addr := range nodeAddrs {
		resp, err := SendTask(ctx, addr, task)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return resp, nil
	}
	return nil, firstErr
}
