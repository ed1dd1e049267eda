package hasher

// Hasher define a capability de hashing de credenciais consumida pelo
// serviço de usuário. O algoritmo concreto é plugável; o contrato exige
// hash unidirecional com salt gerado por fonte criptográfica.
//
// Verify distingue dois fracassos diferentes:
//   - senha incorreta: (false, nil) — resultado esperado de negócio;
//   - falha do primitivo (hash armazenado malformado, custo inválido):
//     (false, err) — falha de servidor, não atribuível ao chamador.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext string, storedHash string) (bool, error)
}
