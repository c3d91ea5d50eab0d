package sqlinline

const QSelectIntegrationToken = `--sql 5c2f9a7e-1b3d-4e8a-a6f0-2d9c7b4e1f38
select token
from integration_tokens
where provider = $1::text and token <> ''
limit 1;
`

const QUpsertIntegrationToken = `--sql 9e41d0b6-7a2c-4f5e-8b13-c6a0f2d9e574
insert into integration_tokens (id, provider, token, properties, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, coalesce($3::jsonb, '{}'::jsonb), now(), now())
on conflict (provider) do update set
    token = excluded.token,
    properties = integration_tokens.properties || excluded.properties,
    updated_at = now();
`

const QDeleteIntegrationToken = `--sql 2a7d4c91-e05b-4b6f-9f38-71c5e8a3d20b
delete from integration_tokens
where provider = $1::text;
`
