package xhash

// Salted 加盐哈希器
//
// 构造时用种子 0 哈希一次盐值得到会话种子，之后 Digest 以该种子哈希每个 key。
// 种子在构造后不再改变，多个盐值的哈希器可以并发使用而互不干扰。
type Salted struct {
	hash Hash
	salt string
	seed uint64
}

// NewSalted 创建加盐哈希器
//
// name 未注册时返回 ErrUnknownHashFunction。
func NewSalted(name Algorithm, salt string) (*Salted, error) {
	h, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return newSalted(h, salt), nil
}

func newSalted(h Hash, salt string) *Salted {
	return &Salted{
		hash: h,
		salt: salt,
		seed: h.Sum([]byte(salt), 0),
	}
}

// Digest 返回 key 的摘要，范围 [0, MaxDigest()]
func (s *Salted) Digest(key []byte) uint64 {
	return s.hash.Sum(key, s.seed)
}

// DigestString 与 Digest 相同，接受字符串 key
func (s *Salted) DigestString(key string) uint64 {
	return s.hash.Sum([]byte(key), s.seed)
}

// Seed 返回由盐值派生的会话种子
func (s *Salted) Seed() uint64 {
	return s.seed
}

// Salt 返回构造时的盐值
func (s *Salted) Salt() string {
	return s.salt
}

// Algorithm 返回算法名称
func (s *Salted) Algorithm() Algorithm {
	return s.hash.name
}

// MaxDigest 返回摘要上界
func (s *Salted) MaxDigest() uint64 {
	return s.hash.MaxDigest()
}
