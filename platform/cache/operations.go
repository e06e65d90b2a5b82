package cache

import (
	"github.com/gomodule/redigo/redis"
)

func Get(key string, conn redis.Conn) (string, error) {
	return redis.String(conn.Do("GET", key))
}

func GetBytes(key string, conn redis.Conn) ([]byte, error) {
	return redis.Bytes(conn.Do("GET", key))
}

func Del(conn redis.Conn, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := conn.Do("DEL", redis.Args{}.AddFlat(keys)...)
	return err
}

func Set(key string, value interface{}, conn redis.Conn) error {
	_, err := redis.String(conn.Do("SET", key, value))
	return err
}

func RPUSH(key string, values []interface{}, conn redis.Conn) (int, error) {
	return redis.Int(conn.Do("RPUSH", redis.Args{}.Add(key).AddFlat(values)...))
}

func LLEN(key string, conn redis.Conn) (int, error) {
	return redis.Int(conn.Do("LLEN", key))
}

// LRANGE returns elements start..stop inclusive; -1 is the last element.
func LRANGE(key string, start, stop int, conn redis.Conn) ([][]byte, error) {
	return redis.ByteSlices(conn.Do("LRANGE", key, start, stop))
}

func SADD(key, member string, conn redis.Conn) error {
	_, err := conn.Do("SADD", key, member)
	return err
}

func SREM(key, member string, conn redis.Conn) error {
	_, err := conn.Do("SREM", key, member)
	return err
}

func SMEMBERS(key string, conn redis.Conn) ([]string, error) {
	return redis.Strings(conn.Do("SMEMBERS", key))
}
