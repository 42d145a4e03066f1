package rabbitmq

import (
	amqp "github.com/rabbitmq/amqp091-go"
)

const USER_INFO_UPDATED_QUEUE = "user_info_updated"

type MQConn struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func New(connString string) (*MQConn, error) {
	conn, err := amqp.Dial(connString)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &MQConn{
		conn: conn,
		ch:   ch,
	}, nil
}

func (m *MQConn) Consume(queue string) (<-chan amqp.Delivery, error) {
	if _, err := m.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, err
	}

	return m.ch.Consume(queue, "", false, false, false, false, nil)
}

func (m *MQConn) Close() error {
	if err := m.ch.Close(); err != nil {
		return err
	}

	return m.conn.Close()
}
